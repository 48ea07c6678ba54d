package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/valyala/fasthttp"
)

// =============================================================================
// OLLAMA CHAT MODEL
// =============================================================================

// OllamaConfig configures an OllamaChatModel.
type OllamaConfig struct {
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	// Timeout bounds a whole request; zero waits for the server indefinitely.
	Timeout time.Duration
	// Client overrides the HTTP client, mainly for tests.
	Client *fasthttp.Client
}

// OllamaChatModel talks to a local Ollama server through its /api/chat endpoint.
// It implements eino's model.BaseChatModel so it can sit in a compose chain.
type OllamaChatModel struct {
	endpoint    string
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	client      *fasthttp.Client
}

var _ model.BaseChatModel = (*OllamaChatModel)(nil)

// NewOllamaChatModel creates a chat model for the given server and model name.
func NewOllamaChatModel(cfg *OllamaConfig) (*OllamaChatModel, error) {
	if cfg == nil {
		return nil, fmt.Errorf("ollama config is nil")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "http://localhost:11434"
	}
	client := cfg.Client
	if client == nil {
		client = &fasthttp.Client{Name: "questionnaire"}
	}
	return &OllamaChatModel{
		endpoint:    base + "/api/chat",
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		client:      client,
	}, nil
}

// Generate sends the conversation and returns the assistant reply.
func (m *OllamaChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := model.GetCommonOptions(&model.Options{
		Model:       &m.model,
		Temperature: &m.temperature,
		MaxTokens:   &m.maxTokens,
	}, opts...)

	reqBody := ollamaChatRequest{
		Model:    m.model,
		Messages: make([]ollamaMessage, 0, len(input)),
		Options:  map[string]any{},
	}
	if o.Model != nil && *o.Model != "" {
		reqBody.Model = *o.Model
	}
	if o.Temperature != nil {
		reqBody.Options["temperature"] = *o.Temperature
	}
	if o.MaxTokens != nil && *o.MaxTokens > 0 {
		reqBody.Options["num_predict"] = *o.MaxTokens
	}
	if len(o.Stop) > 0 {
		reqBody.Options["stop"] = o.Stop
	}
	for _, msg := range input {
		if msg == nil {
			continue
		}
		reqBody.Messages = append(reqBody.Messages, ollamaMessage{Role: string(msg.Role), Content: msg.Content})
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	type outcome struct {
		result ollamaChatResponse
		err    error
	}
	// buffered so the request goroutine never blocks once the caller has gone
	done := make(chan outcome, 1)
	go func() {
		result, err := m.do(body, m.requestTimeout(ctx))
		done <- outcome{result: result, err: err}
	}()

	var result ollamaChatResponse
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		result = out.result
	}

	return &schema.Message{
		Role:    schema.Assistant,
		Content: result.Message.Content,
		ResponseMeta: &schema.ResponseMeta{
			FinishReason: result.DoneReason,
			Usage: &schema.TokenUsage{
				PromptTokens:     result.PromptEvalCount,
				CompletionTokens: result.EvalCount,
				TotalTokens:      result.PromptEvalCount + result.EvalCount,
			},
		},
	}, nil
}

// requestTimeout is the configured timeout, shortened to the context deadline.
func (m *OllamaChatModel) requestTimeout(ctx context.Context) time.Duration {
	timeout := m.timeout
	if dl, ok := ctx.Deadline(); ok {
		if rem := time.Until(dl); timeout <= 0 || rem < timeout {
			timeout = max(rem, time.Millisecond)
		}
	}
	return timeout
}

// do sends one /api/chat request. Request and response are released before
// it returns, so an abandoned call leaves nothing shared behind.
func (m *OllamaChatModel) do(body []byte, timeout time.Duration) (ollamaChatResponse, error) {
	var result ollamaChatResponse

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(m.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	var err error
	if timeout > 0 {
		err = m.client.DoTimeout(req, resp, timeout)
	} else {
		err = m.client.Do(req, resp)
	}
	if err != nil {
		return result, fmt.Errorf("ollama request failed: %w", err)
	}

	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return result, fmt.Errorf("ollama returned status %d: %s", status, strings.TrimSpace(string(resp.Body())))
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return result, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != "" {
		return result, fmt.Errorf("ollama error: %s", result.Error)
	}
	return result, nil
}

// Stream is served by a single Generate call; the local server is asked for
// the complete reply and it is delivered as one chunk.
func (m *OllamaChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// GetType names the component in callback RunInfo.
func (m *OllamaChatModel) GetType() string {
	return "Ollama"
}

// =============================================================================
// OLLAMA API TYPES
// =============================================================================

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  map[string]any  `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Model           string        `json:"model"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	DoneReason      string        `json:"done_reason"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
	Error           string        `json:"error"`
}
