package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every environment-provided option.  Each field has a local
// default or may be empty; an empty credential degrades the corresponding
// feature instead of failing startup.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Generative model.  LLM_PROVIDER selects the backend ("openai" or
	// "gemini"); an empty API key disables model calls per-request.
	LLMProvider    string        `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey   string        `env:"OPENAI_API_KEY"`
	OpenAIModel    string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GeminiAPIKey   string        `env:"GEMINI_API_KEY"`
	GeminiModel    string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	GeminiEndpoint string        `env:"GEMINI_ENDPOINT" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	LLMTimeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`

	// History store.  With no DATABASE_URL the server falls back to a local
	// SQLite file; if that also fails, history is silently disabled.
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"historial.db"`

	// Telegram push.  An empty token disables the out-of-band send.
	TelegramToken   string `env:"TELEGRAM_TOKEN"`
	TelegramAPIBase string `env:"TELEGRAM_API_BASE" envDefault:"https://api.telegram.org"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
