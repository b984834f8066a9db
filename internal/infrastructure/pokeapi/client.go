package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"

	"pokedex-bot/internal/domain/entity"
	"pokedex-bot/internal/domain/port"
	"pokedex-bot/internal/metrics"
)

const (
	defaultBaseURL = "https://pokeapi.co/api/v2"
	defaultTimeout = 5 * time.Second

	// DefaultAbilityLimit сколько способностей попадает в карточку
	DefaultAbilityLimit = 3
)

var errNotFound = errors.New("pokemon not found")

type Config struct {
	BaseURL string
	Timeout time.Duration
	// AbilityLimit 0 означает "без ограничения"
	AbilityLimit int
}

type namedResource struct {
	Name string `json:"name"`
}

// pokemonResponse часть ответа GET /pokemon/{slug}, которая нужна карточке
type pokemonResponse struct {
	Name    string `json:"name"`
	Height  int    `json:"height"` // дециметры
	Weight  int    `json:"weight"` // гектограммы
	Sprites struct {
		Other map[string]struct {
			FrontDefault *string `json:"front_default"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability namedResource `json:"ability"`
	} `json:"abilities"`
}

// Client ищет карточки покемонов в PokéAPI
type Client struct {
	baseURL      string
	abilityLimit int
	httpClient   *http.Client
	cache        port.RecordCache
}

// NewClient создаёт клиента. Кэш передаётся снаружи, nil отключает кэширование.
func NewClient(cfg Config, cache port.RecordCache) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.AbilityLimit < 0 {
		cfg.AbilityLimit = DefaultAbilityLimit
	}

	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		abilityLimit: cfg.AbilityLimit,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		cache:        cache,
	}
}

// Fetch возвращает карточку по slug. Без повторов: любая ошибка даёт отрицательный результат.
func (c *Client) Fetch(ctx context.Context, slug string) entity.Lookup {
	lookup := c.fetch(ctx, slug)
	metrics.LookupsTotal.WithLabelValues(string(lookup.Outcome)).Inc()
	return lookup
}

func (c *Client) fetch(ctx context.Context, slug string) entity.Lookup {
	if slug == "" {
		return entity.Lookup{Outcome: entity.LookupEmptySlug}
	}

	if c.cache != nil {
		if record, ok := c.cache.Get(slug); ok {
			log.WithField("slug", slug).Debug("pokeapi cache hit")
			return entity.Lookup{Record: record, Outcome: entity.LookupCached}
		}
	}

	start := time.Now()
	payload, err := c.get(ctx, slug)
	metrics.ObserveSince("pokeapi", start)

	if errors.Is(err, errNotFound) {
		return entity.Lookup{Outcome: entity.LookupNotFound, Err: err}
	}
	if err != nil {
		log.WithError(err).WithField("slug", slug).Warn("pokeapi request failed")
		return entity.Lookup{Outcome: entity.LookupFailed, Err: err}
	}

	record := c.toRecord(payload)
	if c.cache != nil {
		c.cache.Set(slug, record)
	}

	return entity.Lookup{Record: record, Outcome: entity.LookupFound}
}

func (c *Client) get(ctx context.Context, slug string) (*pokemonResponse, error) {
	endpoint := c.baseURL + "/pokemon/" + url.PathEscape(slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload pokemonResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &payload, nil
}

// toRecord переводит ответ PokéAPI в карточку: метры, килограммы, шесть характеристик
func (c *Client) toRecord(p *pokemonResponse) *entity.PokemonRecord {
	record := entity.NewPokemonRecord(entity.Capitalize(p.Name))
	record.HeightM = entity.DecimetersToMeters(p.Height)
	record.WeightKg = entity.HectogramsToKilograms(p.Weight)

	if artwork, ok := p.Sprites.Other["official-artwork"]; ok && artwork.FrontDefault != nil {
		record.SpriteURL = *artwork.FrontDefault
	}

	for _, t := range p.Types {
		record.Types = append(record.Types, entity.Capitalize(t.Type.Name))
	}

	for _, s := range p.Stats {
		record.SetStat(s.Stat.Name, s.BaseStat)
	}

	abilities := p.Abilities
	if c.abilityLimit > 0 && len(abilities) > c.abilityLimit {
		abilities = abilities[:c.abilityLimit]
	}
	for _, a := range abilities {
		record.Abilities = append(record.Abilities, entity.Capitalize(a.Ability.Name))
	}

	return record
}

var _ port.PokemonSource = (*Client)(nil)
