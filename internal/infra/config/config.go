// internal/infra/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
	DriverPostgres  = "postgres"
	DriverMemory    = "memory"
)

// Auth providers.
const (
	AuthJWT      = "jwt"
	AuthFirebase = "firebase"
)

// Config holds every environment setting of the service.
type Config struct {
	Port        string `mapstructure:"PORT"`
	StoreDriver string `mapstructure:"STORE_DRIVER"`

	FirestoreProjectID       string `mapstructure:"FIRESTORE_PROJECT_ID"`
	FirestoreCredentialsFile string `mapstructure:"FIRESTORE_CREDENTIALS_FILE"`

	MongoURL      string `mapstructure:"MONGODB_URL"`
	MongoDatabase string `mapstructure:"MONGODB_DATABASE"`

	ProductsSeedFile string `mapstructure:"PRODUCTS_SEED_FILE"`

	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DBAutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`

	DefaultWalletMoney   float64 `mapstructure:"DEFAULT_WALLET_MONEY"`
	DefaultAddress       string  `mapstructure:"DEFAULT_ADDRESS"`
	DefaultPaymentOption string  `mapstructure:"DEFAULT_PAYMENT_OPTION"`

	JWTSecret                  string `mapstructure:"JWT_SECRET"`
	JWTSecretName              string `mapstructure:"JWT_SECRET_NAME"`
	JWTAccessExpirationMinutes int    `mapstructure:"JWT_ACCESS_EXPIRATION_MINUTES"`

	AuthProvider      string `mapstructure:"AUTH_PROVIDER"`
	FirebaseProjectID string `mapstructure:"FIREBASE_PROJECT_ID"`

	SendGridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	MailFrom       string `mapstructure:"MAIL_FROM"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"PORT":                          "8082",
	"STORE_DRIVER":                  DriverFirestore,
	"FIRESTORE_PROJECT_ID":          "",
	"FIRESTORE_CREDENTIALS_FILE":    "",
	"MONGODB_URL":                   "",
	"MONGODB_DATABASE":              "qkart",
	"PRODUCTS_SEED_FILE":            "",
	"DATABASE_URL":                  "",
	"DB_AUTO_MIGRATE":               true,
	"DEFAULT_WALLET_MONEY":          500,
	"DEFAULT_ADDRESS":               "ADDRESS_NOT_SET",
	"DEFAULT_PAYMENT_OPTION":        "PAYMENT_OPTION_DEFAULT",
	"JWT_SECRET":                    "",
	"JWT_SECRET_NAME":               "",
	"JWT_ACCESS_EXPIRATION_MINUTES": 240,
	"AUTH_PROVIDER":                 AuthJWT,
	"FIREBASE_PROJECT_ID":           "",
	"SENDGRID_API_KEY":              "",
	"MAIL_FROM":                     "",
	"CORS_ALLOWED_ORIGINS":          "*",
	"LOG_LEVEL":                     "info",
	"LOG_FORMAT":                    "json",
}

// Load reads the environment, then the optional file named by CONFIG_FILE.
// Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if file := strings.TrimSpace(v.GetString("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	c.AuthProvider = strings.ToLower(strings.TrimSpace(c.AuthProvider))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.FirebaseProjectID == "" {
		c.FirebaseProjectID = c.FirestoreProjectID
	}
}

// Validate reports the first setting that prevents startup.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverFirestore:
		if c.FirestoreProjectID == "" {
			return errors.New("config: FIRESTORE_PROJECT_ID is required for the firestore driver")
		}
	case DriverMongo:
		if c.MongoURL == "" {
			return errors.New("config: MONGODB_URL is required for the mongo driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.AuthProvider {
	case AuthJWT:
		if c.JWTSecret == "" && c.JWTSecretName == "" {
			return errors.New("config: JWT_SECRET or JWT_SECRET_NAME is required")
		}
	case AuthFirebase:
		if c.FirebaseProjectID == "" {
			return errors.New("config: FIREBASE_PROJECT_ID is required for the firebase auth provider")
		}
	default:
		return fmt.Errorf("config: unknown AUTH_PROVIDER %q", c.AuthProvider)
	}

	if c.DefaultWalletMoney < 0 {
		return errors.New("config: DEFAULT_WALLET_MONEY must not be negative")
	}
	if strings.TrimSpace(c.DefaultAddress) == "" {
		return errors.New("config: DEFAULT_ADDRESS must not be empty")
	}
	return nil
}

// AccessTokenTTL converts JWT_ACCESS_EXPIRATION_MINUTES.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWTAccessExpirationMinutes) * time.Minute
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
