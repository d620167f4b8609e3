package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	openaigo "github.com/sashabaranov/go-openai"

	"mindful-escapades/internal/config"
)

// SpeechProvider озвучивает текст выбранным голосом.
type SpeechProvider interface {
	Synthesize(ctx context.Context, text, voiceID string) (data []byte, contentType string, err error)
}

// voiceClient ходит в OpenAI-совместимый /audio/speech (edge-tts мост).
type voiceClient struct {
	client *openaigo.Client
	model  openaigo.SpeechModel
}

// NewVoiceClient создает клиента синтеза речи.
func NewVoiceClient(cfg config.VoiceConfig) SpeechProvider {
	openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
	openaiConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	openaiConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &voiceClient{
		client: openaigo.NewClientWithConfig(openaiConfig),
		model:  openaigo.SpeechModel(cfg.Model),
	}
}

func (c *voiceClient) Synthesize(ctx context.Context, text, voiceID string) ([]byte, string, error) {
	resp, err := c.client.CreateSpeech(ctx, openaigo.CreateSpeechRequest{
		Model:          c.model,
		Input:          text,
		Voice:          openaigo.SpeechVoice(voiceID),
		ResponseFormat: openaigo.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, "", err
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read speech body: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("speech API returned empty audio")
	}
	return data, "audio/mpeg", nil
}
