package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qkart/internal/infra/config"
	"qkart/internal/platform/di"
)

func TestNewServerServesRouter(t *testing.T) {
	cfg := &config.Config{
		Port:                 "8082",
		StoreDriver:          config.DriverMemory,
		AuthProvider:         config.AuthJWT,
		JWTSecret:            "api-test-secret",
		DefaultWalletMoney:   500,
		DefaultAddress:       "ADDRESS_NOT_SET",
		DefaultPaymentOption: "PAYMENT_OPTION_DEFAULT",
	}
	cont, err := di.NewContainer(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer cont.Close()

	srv := newServer(cfg, cont)
	assert.Equal(t, ":8082", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
