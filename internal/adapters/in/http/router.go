// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"qkart/internal/adapters/in/http/handler"
	"qkart/internal/adapters/in/http/middleware"
)

// RouterDeps collects what NewRouter wires onto routes.
type RouterDeps struct {
	AuthH    *handler.AuthHandler
	UserH    *handler.UserHandler
	ProductH *handler.ProductHandler
	CartH    *handler.CartHandler

	Verifier       middleware.TokenVerifier
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewRouter builds the API router. Middleware order: request id, real ip,
// CORS, request log, recover. CORS sits outside recover so a 500 still
// carries the CORS headers.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         600,
	}))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recover(deps.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	authMw := middleware.NewAuth(deps.Verifier)

	r.Route("/v1", func(r chi.Router) {
		// ------------------------------------------------------------
		// public
		// ------------------------------------------------------------
		if deps.AuthH != nil {
			r.Post("/auth/register", deps.AuthH.Register)
			r.Post("/auth/login", deps.AuthH.Login)
		}
		if deps.ProductH != nil {
			r.Get("/products", deps.ProductH.List)
			r.Get("/products/{productId}", deps.ProductH.Get)
		}

		// ------------------------------------------------------------
		// authenticated
		// ------------------------------------------------------------
		r.Group(func(r chi.Router) {
			r.Use(authMw.Handler)

			if deps.UserH != nil {
				r.Get("/users/{userId}", deps.UserH.Get)
				r.Put("/users/{userId}/address", deps.UserH.SetAddress)
			}
			if deps.CartH != nil {
				r.Get("/cart", deps.CartH.Get)
				r.Post("/cart", deps.CartH.Add)
				r.Put("/cart", deps.CartH.Update)
				r.Put("/cart/checkout", deps.CartH.Checkout)
				r.Delete("/cart/items/{productId}", deps.CartH.Remove)
			}
		})
	})

	return r
}
