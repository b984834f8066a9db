package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/apex/log"

	"pokedex-bot/internal/domain/entity"
	"pokedex-bot/internal/domain/port"
	"pokedex-bot/internal/metrics"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
	defaultTimeout = 30 * time.Second

	// Ответ ожидается из одного-двух слов
	maxTokens = 20

	apiKeyEnv = "OPENAI_API_KEY"
)

const (
	systemPrompt = "You are a Pokémon identifier. Respond with ONLY the Pokémon name in lowercase."
	userPrompt   = "What Pokémon is this?"
)

// Ответы модели, которые означают "покемона нет"
var denylist = map[string]struct{}{
	"none":               {},
	"unknown":            {},
	"not a pokemon":      {},
	"no pokemon":         {},
	"unable to identify": {},
}

var errNoChoices = errors.New("no choices in response")

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type imageURL struct {
	URL string `json:"url"`
}

type imageContent struct {
	Type     string   `json:"type"`
	ImageURL imageURL `json:"image_url"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client распознаёт покемона через OpenAI-совместимый chat completions API
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient создаёт клиента. Пустой ключ допустим: он проверяется при каждом вызове.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      model,
		endpoint:   strings.TrimRight(baseURL, "/") + "/chat/completions",
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
	}
}

// Identify отправляет снимок модели и возвращает имя покемона.
// Любая ошибка транспорта превращается в IdentifyFailed, наружу уходит только ErrConfiguration.
func (c *Client) Identify(ctx context.Context, image []byte) (entity.Identification, error) {
	apiKey := c.resolveAPIKey()
	if apiKey == "" {
		return entity.Identification{Outcome: entity.IdentifyFailed, Err: entity.ErrConfiguration}, entity.ErrConfiguration
	}

	start := time.Now()
	content, err := c.complete(ctx, apiKey, image)
	metrics.ObserveSince("vision", start)

	var result entity.Identification
	if err != nil {
		log.WithError(err).Warn("vision request failed")
		result = entity.Identification{Outcome: entity.IdentifyFailed, Err: err}
	} else {
		result = interpret(content)
	}

	metrics.IdentificationsTotal.WithLabelValues(string(result.Outcome)).Inc()
	return result, nil
}

// resolveAPIKey ключ читается в момент вызова, чтобы подхватить переменную окружения
func (c *Client) resolveAPIKey() string {
	if c.apiKey != "" {
		return c.apiKey
	}
	return strings.TrimSpace(os.Getenv(apiKeyEnv))
}

func (c *Client) complete(ctx context.Context, apiKey string, image []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	jsonData, err := json.Marshal(c.buildRequest(image))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", errNoChoices
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (c *Client) buildRequest(image []byte) chatRequest {
	return chatRequest{
		Model: c.model,
		Messages: []message{
			{
				Role:    "system",
				Content: systemPrompt,
			},
			{
				Role: "user",
				Content: []any{
					textContent{Type: "text", Text: userPrompt},
					imageContent{Type: "image_url", ImageURL: imageURL{URL: entity.ImageDataURI(image)}},
				},
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0,
	}
}

// interpret отбрасывает пустые ответы и ответы из denylist
func interpret(content string) entity.Identification {
	name := strings.TrimSpace(content)
	if name == "" {
		return entity.Identification{Outcome: entity.IdentifyEmpty, Raw: content}
	}
	if _, denied := denylist[strings.ToLower(name)]; denied {
		return entity.Identification{Outcome: entity.IdentifyDenylisted, Raw: content}
	}
	return entity.Identification{Name: name, Outcome: entity.IdentifyIdentified, Raw: content}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ port.PokemonIdentifier = (*Client)(nil)
