package container

import (
	"pokedex-bot/config"
	app "pokedex-bot/internal/application"
	"pokedex-bot/internal/domain/port"
	"pokedex-bot/internal/infrastructure/openai"
	"pokedex-bot/internal/infrastructure/pokeapi"
	"pokedex-bot/internal/infrastructure/storage"
)

type Container struct {
	SessionService *app.SessionService
	PokedexService *app.PokedexService
	RecordCache    *storage.RecordCache
	Janitor        *app.Janitor
}

func New(sessionRepo port.SessionRepository, identifier port.PokemonIdentifier, source port.PokemonSource) *Container {
	sessionService := app.NewSessionService(sessionRepo)
	pokedexService := app.NewPokedexService(sessionService, identifier, source)

	return &Container{
		SessionService: sessionService,
		PokedexService: pokedexService,
	}
}

// FromConfig собирает сервисы с реальными клиентами OpenAI и PokéAPI
func FromConfig(cfg *config.Config) *Container {
	cache := storage.NewRecordCache(cfg.CacheTTL, nil)

	identifier := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.IdentifyTimeout,
	})

	source := pokeapi.NewClient(pokeapi.Config{
		BaseURL:      cfg.PokeAPIBaseURL,
		Timeout:      cfg.FetchTimeout,
		AbilityLimit: cfg.AbilityLimit,
	}, cache)

	c := New(storage.NewMemorySessionRepository(), identifier, source)
	c.RecordCache = cache
	c.Janitor = app.NewJanitor(c.SessionService, cache, cfg.SessionTTL)
	return c
}
