package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string

	// Модель распознавания
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	IdentifyTimeout time.Duration

	// PokéAPI
	PokeAPIBaseURL string
	FetchTimeout   time.Duration
	CacheTTL       time.Duration
	AbilityLimit   int

	// Уборка заброшенных сессий
	SessionTTL    time.Duration
	SweepInterval time.Duration

	HTTPAddr    string
	MetricsAddr string

	CameraDevice int

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),

		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		IdentifyTimeout: getDurationEnv("IDENTIFY_TIMEOUT", 30*time.Second),

		PokeAPIBaseURL: getEnv("POKEAPI_BASE_URL", "https://pokeapi.co/api/v2"),
		FetchTimeout:   getDurationEnv("FETCH_TIMEOUT", 5*time.Second),
		CacheTTL:       getDurationEnv("CACHE_TTL", time.Hour),
		AbilityLimit:   getIntEnv("ABILITY_LIMIT", 3),

		SessionTTL:    getDurationEnv("SESSION_TTL", 24*time.Hour),
		SweepInterval: getDurationEnv("SWEEP_INTERVAL", 10*time.Minute),

		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),

		CameraDevice: getIntEnv("CAMERA_DEVICE", 0),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv отрицательные значения считаются некорректными.
func getIntEnv(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

// getDurationEnv понимает как "5s", так и целое число секунд.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}
