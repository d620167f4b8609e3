package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mindful-escapades/internal/models"
)

const redisKeyPrefix = "adventure:session:"

// Compile-time check
var _ Store = (*RedisStore)(nil)

// RedisStore хранит сессии в Redis в виде JSON с TTL, который продлевается
// при каждом сохранении. Так несколько инстансов сервера видят одни и те же сессии.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisSessionStore"),
	}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Get(ctx context.Context, id string) (*State, error) {
	data, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	if err != nil {
		r.logger.Error("Failed to read session from redis", zap.String("session_id", id), zap.Error(err))
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		r.logger.Error("Corrupted session payload in redis", zap.String("session_id", id), zap.Error(err))
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &state, nil
}

func (r *RedisStore) Save(ctx context.Context, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", state.ID, err)
	}
	if err := r.client.Set(ctx, redisKey(state.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save session to redis", zap.String("session_id", state.ID), zap.Error(err))
		return fmt.Errorf("redis set session %s: %w", state.ID, err)
	}
	r.logger.Debug("Session saved",
		zap.String("session_id", state.ID),
		zap.Int("turns", state.TurnCount),
		zap.Duration("ttl", r.ttl),
	)
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session %s: %w", id, err)
	}
	return nil
}
