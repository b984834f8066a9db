package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"

	"pokedex-bot/config"
	"pokedex-bot/internal/container"
	"pokedex-bot/internal/domain/entity"
	"pokedex-bot/internal/infrastructure/vision"
	"pokedex-bot/internal/logging"
	"pokedex-bot/internal/presenter"
)

// Снимает один кадр с веб-камеры, распознаёт покемона и печатает карточку.
// Ошибка камеры завершает процесс сразу.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	camera, err := vision.NewCamera(cfg.CameraDevice)
	if err != nil {
		log.WithError(err).Fatal("cannot open camera")
	}
	defer camera.Close()

	ctx := context.Background()

	image, err := camera.Capture(ctx)
	if err != nil {
		camera.Close()
		log.WithError(err).Fatal("cannot read frame")
	}

	appContainer := container.FromConfig(cfg)
	pokedex := appContainer.PokedexService

	const sessionID = "camera"
	if _, err := pokedex.Capture(ctx, sessionID, image); err != nil {
		log.WithError(err).Fatal("capture failed")
	}

	fmt.Println("Identifying Pokémon...")
	out, err := pokedex.Analyze(ctx, sessionID)
	if errors.Is(err, entity.ErrConfiguration) {
		fmt.Fprintln(os.Stderr, "Error: OPENAI_API_KEY not set")
		os.Exit(1)
	}
	if err != nil {
		log.WithError(err).Fatal("analysis failed")
	}

	if out.Session.State != entity.StateFound {
		fmt.Println(presenter.NotFoundText)
		return
	}

	fmt.Println(presenter.Card(out.Session.Record))
	if out.Session.Record.SpriteURL != "" {
		fmt.Println("Sprite:", out.Session.Record.SpriteURL)
	}
}
