package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps codes in Redis so they survive restarts and are shared
// across instances. Codes and attempt counters expire together.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func codeKey(email string) string     { return "otp:code:" + email }
func attemptsKey(email string) string { return "otp:attempts:" + email }

func (s *RedisStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, codeKey(email), code, ttl)
	pipe.Set(ctx, attemptsKey(email), 0, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("otp put: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, email string) (Entry, error) {
	code, err := s.client.Get(ctx, codeKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("otp get: %w", err)
	}
	attempts, err := s.client.Get(ctx, attemptsKey(email)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Entry{}, fmt.Errorf("otp attempts: %w", err)
	}
	return Entry{Code: code, Attempts: attempts}, nil
}

func (s *RedisStore) RecordFailure(ctx context.Context, email string) (int, error) {
	n, err := s.client.Incr(ctx, attemptsKey(email)).Result()
	if err != nil {
		return 0, fmt.Errorf("otp incr: %w", err)
	}
	return int(n), nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, codeKey(email), attemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("otp delete: %w", err)
	}
	return nil
}
