// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpin "qkart/internal/adapters/in/http"
	"qkart/internal/infra/config"
	"qkart/internal/infra/logger"
	"qkart/internal/platform/di"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("config load failed")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	cont, err := di.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("di init failed")
	}
	defer cont.Close()

	srv := newServer(cfg, cont)

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		log.Info().Str("signal", sig.String()).Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
		close(idleConnsClosed)
	}()

	log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server error")
		cont.Close()
		os.Exit(1)
	}

	<-idleConnsClosed
	log.Info().Msg("server stopped")
}

func newServer(cfg *config.Config, cont *di.Container) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpin.NewRouter(cont.RouterDeps()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
