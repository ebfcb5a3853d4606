// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	userdom "qkart/internal/domain/user"
)

const msgPleaseAuthenticate = "Please authenticate"

type ctxKey struct{ name string }

var (
	ctxKeyUser       = ctxKey{"user"}
	ctxKeyUserHolder = ctxKey{"userHolder"}
)

// userHolder lets the request logger see who was authenticated further down the chain.
type userHolder struct{ id string }

func withUserHolder(ctx context.Context, h *userHolder) context.Context {
	return context.WithValue(ctx, ctxKeyUserHolder, h)
}

// TokenVerifier resolves a bearer token to the user it was issued for.
type TokenVerifier interface {
	VerifyUser(ctx context.Context, token string) (*userdom.User, error)
}

// Auth rejects requests without a valid bearer token and stores the
// resolved user in the request context.
type Auth struct {
	Verifier TokenVerifier
}

func NewAuth(v TokenVerifier) *Auth {
	return &Auth{Verifier: v}
}

func (m *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Verifier == nil {
			writeStatus(w, http.StatusServiceUnavailable, "auth middleware not initialized")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeStatus(w, http.StatusUnauthorized, msgPleaseAuthenticate)
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if raw == "" {
			writeStatus(w, http.StatusUnauthorized, msgPleaseAuthenticate)
			return
		}

		u, err := m.Verifier.VerifyUser(r.Context(), raw)
		if err != nil || u == nil {
			writeStatus(w, http.StatusUnauthorized, msgPleaseAuthenticate)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, u *userdom.User) context.Context {
	if h, ok := ctx.Value(ctxKeyUserHolder).(*userHolder); ok && h != nil && u != nil {
		h.id = u.ID
	}
	return context.WithValue(ctx, ctxKeyUser, u)
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(r *http.Request) (*userdom.User, bool) {
	return UserFromContext(r.Context())
}

func UserFromContext(ctx context.Context) (*userdom.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(*userdom.User)
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}

func writeStatus(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "message": msg})
}
