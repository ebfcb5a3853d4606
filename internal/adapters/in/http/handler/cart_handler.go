// internal/adapters/in/http/handler/cart_handler.go
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

// CartHandler serves /v1/cart. Every route acts on the caller's own cart.
type CartHandler struct {
	carts    *usecase.CartUsecase
	checkout *usecase.CheckoutUsecase
	log      zerolog.Logger
}

func NewCartHandler(carts *usecase.CartUsecase, checkout *usecase.CheckoutUsecase, log zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		checkout: checkout,
		log:      log.With().Str("component", "cart_handler").Logger(),
	}
}

// Get: GET /v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}
	c, err := h.carts.GetByUser(r.Context(), u)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Add: POST /v1/cart
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req cartItemRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	c, err := h.carts.AddProduct(r.Context(), u, req.ProductID, *req.Quantity)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// Update: PUT /v1/cart. A quantity of 0 removes the product.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req cartItemRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	if *req.Quantity == 0 {
		if err := h.carts.DeleteProduct(r.Context(), u, req.ProductID); err != nil {
			writeError(w, r, h.log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	c, err := h.carts.UpdateProduct(r.Context(), u, req.ProductID, *req.Quantity)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Remove: DELETE /v1/cart/items/{productId}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}
	if err := h.carts.DeleteProduct(r.Context(), u, chi.URLParam(r, "productId")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Checkout: PUT /v1/cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	u, ok := h.caller(w, r)
	if !ok {
		return
	}
	if err := h.checkout.Checkout(r.Context(), u); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) caller(w http.ResponseWriter, r *http.Request) (*userdom.User, bool) {
	u, ok := middleware.CurrentUser(r)
	if !ok {
		writeError(w, r, h.log, common.Unauthorized("Please authenticate"))
		return nil, false
	}
	return u, true
}
