package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"mindful-escapades/internal/config"
)

// ollamaBackend - локальная модель через нативный API Ollama.
type ollamaBackend struct {
	client      *api.Client
	model       string
	temperature float64
}

func newOllamaBackend(cfg config.AIConfig) (*ollamaBackend, error) {
	// api.NewClient ждет URL без суффикса /v1
	baseURL := strings.TrimSuffix(strings.TrimSuffix(cfg.BaseURL, "/"), "/v1")
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга Ollama Base URL '%s': %w", baseURL, err)
	}
	return &ollamaBackend{
		client:      api.NewClient(parsedURL, &http.Client{Timeout: cfg.Timeout}),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

func (b *ollamaBackend) Model() string { return b.model }

func (b *ollamaBackend) Chat(ctx context.Context, messages []ChatMessage) (ChatResult, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    b.model,
		Messages: make([]api.Message, 0, len(messages)),
		Stream:   &stream,
		Format:   json.RawMessage(`"json"`),
		Options:  map[string]any{"temperature": b.temperature},
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, api.Message{Role: m.Role, Content: m.Content})
	}

	var resp api.ChatResponse
	err := b.client.Chat(ctx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	if err != nil {
		return ChatResult{}, err
	}
	return ChatResult{
		Content:          resp.Message.Content,
		PromptTokens:     resp.PromptEvalCount,
		CompletionTokens: resp.EvalCount,
	}, nil
}

// NewChatBackend выбирает реализацию по AI_CLIENT_TYPE.
func NewChatBackend(cfg config.AIConfig) (ChatBackend, error) {
	switch strings.ToLower(cfg.ClientType) {
	case "openai":
		return newOpenAIBackend(cfg), nil
	case "ollama":
		return newOllamaBackend(cfg)
	default:
		return nil, fmt.Errorf("неизвестный тип AI клиента: '%s'", cfg.ClientType)
	}
}
