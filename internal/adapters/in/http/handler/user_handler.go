// internal/adapters/in/http/handler/user_handler.go
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"qkart/internal/adapters/in/http/middleware"
	"qkart/internal/application/usecase"
	"qkart/internal/domain/common"
	userdom "qkart/internal/domain/user"
)

const (
	msgUserNotFound    = "User not found"
	msgForbiddenRead   = "User not Authenticated to see other user's data"
	msgForbiddenUpdate = "User not authorized to access this resource"
)

// UserHandler serves /v1/users. A caller may only read or change the user
// whose email matches their own.
type UserHandler struct {
	uc  *usecase.UserUsecase
	log zerolog.Logger
}

func NewUserHandler(uc *usecase.UserUsecase, log zerolog.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log.With().Str("component", "user_handler").Logger()}
}

// Get: GET /v1/users/{userId}[?q=address]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, r, h.log, common.Unauthorized("Please authenticate"))
		return
	}
	userID := trimmed(chi.URLParam(r, "userId"))

	if r.URL.Query().Get("q") == "address" {
		view, err := h.uc.GetAddressByID(r.Context(), userID)
		if err != nil {
			writeError(w, r, h.log, h.notFoundAs(err))
			return
		}
		if !sameOwner(caller, view.Email) {
			writeError(w, r, h.log, common.Forbidden(msgForbiddenRead))
			return
		}
		writeJSON(w, http.StatusOK, addressResponse{Address: view.Address})
		return
	}

	u, err := h.uc.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, h.notFoundAs(err))
		return
	}
	if !sameOwner(caller, u.Email) {
		writeError(w, r, h.log, common.Forbidden(msgForbiddenRead))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// SetAddress: PUT /v1/users/{userId}/address
func (h *UserHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, r, h.log, common.Unauthorized("Please authenticate"))
		return
	}

	u, err := h.uc.GetByID(r.Context(), trimmed(chi.URLParam(r, "userId")))
	if err != nil {
		writeError(w, r, h.log, h.notFoundAs(err))
		return
	}
	if !sameOwner(caller, u.Email) {
		writeError(w, r, h.log, common.Forbidden(msgForbiddenUpdate))
		return
	}

	var req addressRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	addr, err := h.uc.SetAddress(r.Context(), u, req.Address)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, addressResponse{Address: addr})
}

// notFoundAs keeps invalid ids and missing users on the same 404.
func (h *UserHandler) notFoundAs(err error) error {
	switch common.KindOf(err) {
	case common.KindNotFound, common.KindBadRequest:
		return common.NotFound(msgUserNotFound)
	default:
		return err
	}
}

func sameOwner(caller *userdom.User, email string) bool {
	return userdom.NormalizeEmail(caller.Email) == userdom.NormalizeEmail(email)
}
