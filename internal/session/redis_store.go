package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "newel:session:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *RedisStore) Create(ctx context.Context, userID uint, ttl time.Duration) (string, error) {
	id := newSessionID()
	if err := s.client.Set(ctx, key(id), strconv.FormatUint(uint64(userID), 10), ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisStore) Lookup(ctx context.Context, sessionID string) (uint, error) {
	val, err := s.client.Get(ctx, key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, ErrSessionNotFound
	}
	return uint(id), nil
}

func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, key(sessionID)).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
