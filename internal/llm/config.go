package llm

import (
	"fmt"
	"strings"
	"time"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// Config selects and tunes the text-generation backend.
type Config struct {
	Provider    string  `envconfig:"LLM_PROVIDER" default:"ollama"`
	Model       string  `envconfig:"LLM_MODEL" default:"deepseek-r1:8b"`
	Temperature float32 `envconfig:"LLM_TEMPERATURE" default:"0.7"`
	MaxTokens   int     `envconfig:"LLM_MAX_TOKENS" default:"0"`

	OllamaBaseURL string `envconfig:"OLLAMA_BASE_URL" default:"http://localhost:11434"`
	OllamaTimeout string `envconfig:"OLLAMA_TIMEOUT" default:"0s"`

	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL"`
}

// Validate checks the provider specific settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Provider) {
	case ProviderOllama:
		if c.OllamaBaseURL == "" {
			return fmt.Errorf("OLLAMA_BASE_URL is required for provider %q", ProviderOllama)
		}
		if _, err := c.ollamaTimeout(); err != nil {
			return err
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %q", ProviderGemini)
		}
	default:
		return fmt.Errorf("unknown LLM provider %q (use %s or %s)", c.Provider, ProviderOllama, ProviderGemini)
	}
	if c.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	return nil
}

func (c *Config) ollamaTimeout() (time.Duration, error) {
	if c.OllamaTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.OllamaTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid OLLAMA_TIMEOUT %q: %w", c.OllamaTimeout, err)
	}
	return d, nil
}
