package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"

	"mindful-escapades/internal/models"
	"mindful-escapades/internal/session"
)

// Роли сообщений диалога с моделью.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage - одно сообщение диалога, независимое от конкретного API.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatResult - ответ модели и, если API его сообщил, расход токенов.
type ChatResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// ChatBackend - конкретный API языковой модели (OpenAI-совместимый или Ollama).
// Реализации не трогают состояние сессии и не оборачивают ошибки в ErrTransport.
type ChatBackend interface {
	Chat(ctx context.Context, messages []ChatMessage) (ChatResult, error)
	Model() string
}

// NarrativeClient продвигает историю на один ход.
type NarrativeClient interface {
	// Advance отправляет системный промпт, всю историю сессии и новую реплику.
	// При успехе добавляет обмен в историю state и возвращает сырой ответ модели.
	// При ошибке state не меняется.
	Advance(ctx context.Context, state *session.State, utterance string) (string, error)
}

type narrativeClient struct {
	backend      ChatBackend
	systemPrompt string
	timeout      time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// NewNarrativeClient создает клиента рассказчика поверх backend.
// timeout ограничивает один вызов модели; 0 означает без отдельного ограничения.
func NewNarrativeClient(backend ChatBackend, systemPrompt string, timeout time.Duration, logger *zap.Logger) (NarrativeClient, error) {
	if backend == nil {
		return nil, errors.New("narrative client: backend is nil")
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, errors.New("narrative client: system prompt is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &narrativeClient{
		backend:      backend,
		systemPrompt: systemPrompt,
		timeout:      timeout,
		logger:       logger.Named("NarrativeClient"),
		now:          time.Now,
	}, nil
}

func (c *narrativeClient) Advance(ctx context.Context, state *session.State, utterance string) (string, error) {
	model := c.backend.Model()
	log := c.logger.With(zap.String("session_id", state.ID), zap.String("model", model))

	if state.Terminal() {
		narrativeRequestsTotal.WithLabelValues(model, "refused").Inc()
		log.Info("Ход отклонен: сессия уже завершена", zap.String("status", string(state.Status)))
		return "", fmt.Errorf("%w: session %s ended with %s", models.ErrSessionTerminated, state.ID, state.Status)
	}

	messages := buildMessages(c.systemPrompt, state.History, utterance)

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := c.backend.Chat(callCtx, messages)
	duration := time.Since(start)
	narrativeRequestDuration.WithLabelValues(model).Observe(duration.Seconds())

	if err != nil {
		narrativeRequestsTotal.WithLabelValues(model, "error").Inc()
		log.Error("Ошибка обращения к модели",
			zap.Duration("duration", duration),
			zap.Int("history_len", len(state.History)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", models.ErrTransport, err)
	}
	narrativeRequestsTotal.WithLabelValues(model, "success").Inc()

	if result.PromptTokens > 0 {
		narrativePromptTokens.WithLabelValues(model, "reported").Observe(float64(result.PromptTokens))
	} else if estimated, ok := estimateTokens(model, messages); ok {
		narrativePromptTokens.WithLabelValues(model, "estimated").Observe(float64(estimated))
	}

	log.Debug("Ответ модели получен",
		zap.Duration("duration", duration),
		zap.Int("reply_len", len(result.Content)),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("completion_tokens", result.CompletionTokens),
	)

	state.AppendExchange(utterance, result.Content, c.now())
	return result.Content, nil
}

// buildMessages собирает запрос: системный промпт, затем пары
// "игрок - модель" из истории в исходном порядке, затем новая реплика.
func buildMessages(systemPrompt string, history []models.Exchange, utterance string) []ChatMessage {
	messages := make([]ChatMessage, 0, 2+2*len(history))
	messages = append(messages, ChatMessage{Role: RoleSystem, Content: systemPrompt})
	for _, ex := range history {
		messages = append(messages,
			ChatMessage{Role: RoleUser, Content: ex.Utterance},
			ChatMessage{Role: RoleAssistant, Content: ex.Reply},
		)
	}
	return append(messages, ChatMessage{Role: RoleUser, Content: utterance})
}

var (
	encoderOnce sync.Once
	encoder     *tiktoken.Tiktoken
)

// estimateTokens оценивает размер промпта, если API не вернул usage.
// Для моделей, которых tiktoken не знает, используется cl100k_base.
func estimateTokens(model string, messages []ChatMessage) (int, bool) {
	encoderOnce.Do(func() {
		tke, err := tiktoken.EncodingForModel(model)
		if err != nil {
			tke, err = tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
		}
		if err == nil {
			encoder = tke
		}
	})
	if encoder == nil {
		return 0, false
	}
	total := 0
	for _, m := range messages {
		total += len(encoder.Encode(m.Content, nil, nil))
	}
	return total, true
}
