package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mindful-escapades/internal/config"
	"mindful-escapades/internal/prompts"
	"mindful-escapades/internal/service"
	"mindful-escapades/internal/session"
)

// NewStore создает хранилище сессий по SESSION_STORE. Возвращаемая функция
// закрывает соединения и безопасна для вызова через defer.
func NewStore(ctx context.Context, cfg config.SessionConfig, logger *zap.Logger) (session.Store, func(), error) {
	switch cfg.Store {
	case "redis":
		client, err := setupRedis(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Warn("Error closing Redis client", zap.Error(err))
			}
		}
		return session.NewRedisStore(client, cfg.TTL, logger), closeFn, nil
	default:
		return session.NewInMemoryStore(), func() {}, nil
	}
}

func setupRedis(ctx context.Context, cfg config.SessionConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
	return client, nil
}

// Pipeline - собранный конвейер хода.
type Pipeline struct {
	Turns *service.TurnService
	Media *service.MediaDispatcher
}

// NewPipeline собирает клиента модели, провайдеров медиа и сервис ходов.
func NewPipeline(cfg *config.Config, store session.Store, logger *zap.Logger) (*Pipeline, error) {
	systemPrompt, err := prompts.Adventure(cfg.AI.SystemPromptFile)
	if err != nil {
		return nil, err
	}

	backend, err := service.NewChatBackend(cfg.AI)
	if err != nil {
		return nil, err
	}
	narrator, err := service.NewNarrativeClient(backend, systemPrompt, cfg.AI.Timeout, logger)
	if err != nil {
		return nil, err
	}

	images := service.NewImageClient(cfg.Image, logger)
	var voices service.SpeechProvider
	if cfg.Voice.Enabled {
		voices = service.NewVoiceClient(cfg.Voice)
	} else {
		logger.Info("Speech synthesis disabled (TTS_ENABLED=false)")
	}

	media, err := service.NewMediaDispatcher(images, voices, cfg.Image.DefaultStyle, cfg.Voice.DefaultStyle, logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		Turns: service.NewTurnService(store, narrator, media, logger),
		Media: media,
	}, nil
}
