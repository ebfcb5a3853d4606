package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, DriverFirestore, cfg.StoreDriver)
	assert.Equal(t, float64(500), cfg.DefaultWalletMoney)
	assert.Equal(t, "ADDRESS_NOT_SET", cfg.DefaultAddress)
	assert.Equal(t, "PAYMENT_OPTION_DEFAULT", cfg.DefaultPaymentOption)
	assert.Equal(t, 240*time.Minute, cfg.AccessTokenTTL())
	assert.True(t, cfg.DBAutoMigrate)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("DEFAULT_WALLET_MONEY", "1200.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 1200.5, cfg.DefaultWalletMoney)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "qkart.env")
	require.NoError(t, os.WriteFile(file, []byte("STORE_DRIVER=mongo\nMONGODB_URL=mongodb://localhost:27017\n"), 0o600))
	t.Setenv("CONFIG_FILE", file)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURL)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			StoreDriver:    DriverMemory,
			AuthProvider:   AuthJWT,
			JWTSecret:      "secret",
			DefaultAddress: "ADDRESS_NOT_SET",
		}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.StoreDriver = "cassandra"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.StoreDriver = DriverPostgres
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg.JWTSecretName = "projects/p/secrets/jwt/versions/latest"
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.AuthProvider = AuthFirebase
	assert.Error(t, cfg.Validate())
}
