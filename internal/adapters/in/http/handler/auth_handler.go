// internal/adapters/in/http/handler/auth_handler.go
package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"qkart/internal/application/usecase"
	"qkart/internal/application/usecase/auth"
)

// AuthHandler serves /v1/auth.
type AuthHandler struct {
	svc *auth.Service
	log zerolog.Logger
}

func NewAuthHandler(svc *auth.Service, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log.With().Str("component", "auth_handler").Logger()}
}

// Register: POST /v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	res, err := h.svc.Register(r.Context(), usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Login: POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
