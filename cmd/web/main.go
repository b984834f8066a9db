package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"pokedex-bot/config"
	"pokedex-bot/internal/container"
	"pokedex-bot/internal/httpapi"
	"pokedex-bot/internal/logging"
	"pokedex-bot/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY is not set, analysis will report a configuration error")
	}

	metrics.Register()
	gin.SetMode(gin.ReleaseMode)

	appContainer := container.FromConfig(cfg)
	handlers := httpapi.NewHandlers(appContainer.PokedexService, appContainer.SessionService)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(handlers),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go appContainer.Janitor.Run(ctx, cfg.SweepInterval)

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}
