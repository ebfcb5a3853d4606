// internal/platform/di/container.go
package di

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	firebase "firebase.google.com/go/v4"
	"github.com/rs/zerolog"

	httpin "qkart/internal/adapters/in/http"
	"qkart/internal/adapters/in/http/handler"
	"qkart/internal/adapters/in/http/middleware"
	"qkart/internal/adapters/out/mail"
	"qkart/internal/adapters/out/secret"
	"qkart/internal/application/usecase"
	"qkart/internal/application/usecase/auth"
	"qkart/internal/infra/config"
	firestoreinfra "qkart/internal/infra/firestore"
)

// Container holds everything main needs: the usecases, the router
// dependencies, and the resources to close on shutdown.
type Container struct {
	Config *config.Config
	Log    zerolog.Logger

	UserUC     *usecase.UserUsecase
	CartUC     *usecase.CartUsecase
	CheckoutUC *usecase.CheckoutUsecase
	ProductUC  *usecase.ProductUsecase
	AuthSvc    *auth.Service

	verifier middleware.TokenVerifier
	stores   *stores
}

// NewContainer opens the configured store and wires every layer.
func NewContainer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Log: log}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("di: open %s store: %w", cfg.StoreDriver, err)
	}
	c.stores = st

	defaults := usecase.Defaults{
		WalletMoney:   cfg.DefaultWalletMoney,
		Address:       cfg.DefaultAddress,
		PaymentOption: cfg.DefaultPaymentOption,
	}

	c.UserUC = usecase.NewUserUsecase(st.Users, defaults)
	c.CartUC = usecase.NewCartUsecase(st.Carts, st.Products, defaults)
	c.ProductUC = usecase.NewProductUsecase(st.Products)
	c.CheckoutUC = usecase.NewCheckoutUsecase(st.Checkout, c.buildMailer(), defaults, log)

	secretValue, err := c.jwtSecret(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	tokens, err := auth.NewTokenMaker(secretValue, cfg.AccessTokenTTL())
	if err != nil {
		if cfg.AuthProvider == config.AuthJWT {
			c.Close()
			return nil, err
		}
		// firebase-only deployments may run without local tokens; register
		// and login then fail with 500 instead of blocking startup.
		log.Warn().Err(err).Msg("jwt signing disabled")
	}
	c.AuthSvc = auth.NewService(c.UserUC, tokens)

	switch cfg.AuthProvider {
	case config.AuthFirebase:
		v, err := c.firebaseVerifier(ctx)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.verifier = v
	default:
		c.verifier = middleware.NewJWTVerifier(c.AuthSvc, c.UserUC)
	}

	log.Info().
		Str("store", cfg.StoreDriver).
		Str("auth", cfg.AuthProvider).
		Msg("container ready")
	return c, nil
}

// RouterDeps builds handlers for httpin.NewRouter.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		AuthH:          handler.NewAuthHandler(c.AuthSvc, c.Log),
		UserH:          handler.NewUserHandler(c.UserUC, c.Log),
		ProductH:       handler.NewProductHandler(c.ProductUC, c.Log),
		CartH:          handler.NewCartHandler(c.CartUC, c.CheckoutUC, c.Log),
		Verifier:       c.verifier,
		AllowedOrigins: c.Config.AllowedOrigins(),
		Logger:         c.Log,
	}
}

// Close releases the store clients. Safe to call twice.
func (c *Container) Close() {
	if err := c.stores.Close(); err != nil {
		c.Log.Warn().Err(err).Msg("store close failed")
	}
	c.stores = nil
}

// ---- Helpers ----

func (c *Container) buildMailer() usecase.ReceiptMailer {
	key := strings.TrimSpace(c.Config.SendGridAPIKey)
	if key == "" || strings.TrimSpace(c.Config.MailFrom) == "" {
		c.Log.Info().Msg("SENDGRID_API_KEY or MAIL_FROM empty: receipts are logged only")
		return mail.NewLogMailer(c.Log)
	}
	return mail.NewReceiptMailer(mail.NewSendGridClient(key, c.Log), c.Config.MailFrom)
}

// jwtSecret prefers JWT_SECRET_NAME (Secret Manager) over JWT_SECRET.
func (c *Container) jwtSecret(ctx context.Context) (string, error) {
	name := strings.TrimSpace(c.Config.JWTSecretName)
	if name == "" {
		return c.Config.JWTSecret, nil
	}

	sm, err := secretmanager.NewClient(ctx, firestoreinfra.ClientOptions(c.Config.FirestoreCredentialsFile)...)
	if err != nil {
		return "", fmt.Errorf("di: secretmanager.NewClient: %w", err)
	}
	defer sm.Close()

	projectID := c.Config.FirestoreProjectID
	if projectID == "" {
		projectID = c.Config.FirebaseProjectID
	}
	v, err := secret.NewResolver(sm, projectID).Resolve(ctx, name)
	if err != nil {
		return "", fmt.Errorf("di: resolve jwt secret: %w", err)
	}
	c.Log.Info().Msg("jwt secret loaded from Secret Manager")
	return v, nil
}

func (c *Container) firebaseVerifier(ctx context.Context) (*middleware.FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx,
		&firebase.Config{ProjectID: c.Config.FirebaseProjectID},
		firestoreinfra.ClientOptions(c.Config.FirestoreCredentialsFile)...,
	)
	if err != nil {
		return nil, fmt.Errorf("di: firebase app init: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("di: firebase auth init: %w", err)
	}
	c.Log.Info().Str("project", c.Config.FirebaseProjectID).Msg("firebase auth initialized")
	return middleware.NewFirebaseVerifier(client, c.UserUC), nil
}
