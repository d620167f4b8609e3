package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openaigo "github.com/sashabaranov/go-openai"

	"mindful-escapades/internal/config"
)

// openAIBackend говорит с любым OpenAI-совместимым API (по умолчанию Gemini).
type openAIBackend struct {
	client      *openaigo.Client
	model       string
	temperature float32
}

func newOpenAIBackend(cfg config.AIConfig) *openAIBackend {
	openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
	// go-openai сам добавляет "/chat/completions"
	openaiConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	openaiConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &openAIBackend{
		client:      openaigo.NewClientWithConfig(openaiConfig),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
	}
}

func (b *openAIBackend) Model() string { return b.model }

func (b *openAIBackend) Chat(ctx context.Context, messages []ChatMessage) (ChatResult, error) {
	req := openaigo.ChatCompletionRequest{
		Model:       b.model,
		Messages:    make([]openaigo.ChatCompletionMessage, 0, len(messages)),
		Temperature: b.temperature,
		ResponseFormat: &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openaigo.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return ChatResult{}, err
	}
	// Пустой текст - забота парсера; без choices ответа нет вовсе
	if len(resp.Choices) == 0 {
		return ChatResult{}, errors.New("model returned no choices")
	}
	return ChatResult{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}
