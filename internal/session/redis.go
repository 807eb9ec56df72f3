package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one active token per user under session:<user_id>.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(userID uuid.UUID) string {
	return fmt.Sprintf("session:%s", userID)
}

func (s *RedisStore) Set(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(userID), token, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	val, err := s.client.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return "", ErrExpired
	}

	if err != nil {
		return "", err
	}

	return val, nil
}

func (s *RedisStore) Del(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, sessionKey(userID)).Err()
}
