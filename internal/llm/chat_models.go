package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	logx "github.com/Chative-core-poc-v1/questionnaire/pkg/logger"
)

// NewChatModel builds the chat model selected by cfg.Provider.
func NewChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini:
		return newGeminiChatModel(ctx, cfg)
	default:
		timeout, _ := cfg.ollamaTimeout()
		cm, err := NewOllamaChatModel(&OllamaConfig{
			BaseURL:     cfg.OllamaBaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     timeout,
		})
		if err != nil {
			logx.Error().Err(err).Msg("Error creating Ollama model")
			return nil, fmt.Errorf("error creating Ollama model: %w", err)
		}
		logx.Debug().Str("model", cfg.Model).Str("base_url", cfg.OllamaBaseURL).Msg("Ollama chat model ready")
		return cm, nil
	}
}

func newGeminiChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.GeminiBaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.GeminiBaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	gc := &gemini.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
	}
	if cfg.MaxTokens > 0 {
		gc.MaxTokens = &cfg.MaxTokens
	}

	cm, err := gemini.NewChatModel(ctx, gc)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini model")
		return nil, fmt.Errorf("error creating Gemini model: %w", err)
	}
	logx.Debug().Str("model", cfg.Model).Msg("Gemini chat model ready")
	return cm, nil
}
