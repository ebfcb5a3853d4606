package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpin "qkart/internal/adapters/in/http"
	"qkart/internal/adapters/out/mail"
	"qkart/internal/infra/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StoreDriver:                config.DriverMemory,
		AuthProvider:               config.AuthJWT,
		JWTSecret:                  "container-test-secret",
		JWTAccessExpirationMinutes: 30,
		DefaultWalletMoney:         500,
		DefaultAddress:             "ADDRESS_NOT_SET",
		DefaultPaymentOption:       "PAYMENT_OPTION_DEFAULT",
		CORSAllowedOrigins:         "*",
	}
}

func TestNewContainerWithMemoryStore(t *testing.T) {
	c, err := NewContainer(context.Background(), memoryConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer c.Close()

	router := httpin.NewRouter(c.RouterDeps())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	c.Close()
}

func TestMemoryStoreSeededFromFile(t *testing.T) {
	cfg := memoryConfig()
	cfg.ProductsSeedFile = filepath.Join("..", "..", "adapters", "out", "memory", "testdata", "products.json")

	c, err := NewContainer(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer c.Close()

	router := httpin.NewRouter(c.RouterDeps())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products/BW0jAAeDJmlZCF8i", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNIFACTOR Mens Running Shoes")

	cfg = memoryConfig()
	cfg.ProductsSeedFile = filepath.Join(t.TempDir(), "missing.json")
	_, err = NewContainer(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.JWTSecret = ""
	_, err := NewContainer(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)

	cfg = memoryConfig()
	cfg.StoreDriver = "cassandra"
	_, err = NewContainer(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestBuildMailerFallsBackToLog(t *testing.T) {
	c := &Container{Config: memoryConfig(), Log: zerolog.Nop()}
	_, ok := c.buildMailer().(*mail.LogMailer)
	assert.True(t, ok)

	c.Config.SendGridAPIKey = "SG.key"
	c.Config.MailFrom = "shop@qkart.example"
	_, ok = c.buildMailer().(*mail.ReceiptMailer)
	assert.True(t, ok)
}
