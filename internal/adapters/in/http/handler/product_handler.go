// internal/adapters/in/http/handler/product_handler.go
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"qkart/internal/application/usecase"
)

// ProductHandler serves the public catalogue.
type ProductHandler struct {
	uc  *usecase.ProductUsecase
	log zerolog.Logger
}

func NewProductHandler(uc *usecase.ProductUsecase, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log.With().Str("component", "product_handler").Logger()}
}

// List: GET /v1/products[?search=]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.uc.Search(r.Context(), trimmed(r.URL.Query().Get("search")))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get: GET /v1/products/{productId}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetByID(r.Context(), trimmed(chi.URLParam(r, "productId")))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
