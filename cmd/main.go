package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pokedex-bot/config"
	telegram "pokedex-bot/internal/api"
	"pokedex-bot/internal/container"
	"pokedex-bot/internal/logging"
	"pokedex-bot/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY is not set, analysis will report a configuration error")
	}

	metrics.Register()
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.WithField("addr", cfg.MetricsAddr).Info("serving metrics")
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	// Собираем сервисы приложения
	appContainer := container.FromConfig(cfg)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.PokedexService)
	if err != nil {
		log.WithError(err).Fatal("failed to create bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go appContainer.Janitor.Run(ctx, cfg.SweepInterval)

	log.Info("bot is running...")
	if err := bot.Run(ctx); err != nil {
		log.WithError(err).Fatal("bot error")
	}
	log.Info("bot stopped")
}
