package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/transcript-search/pkg/config"
)

// NewRedisClient connects to Redis and waits until it answers PING
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 15 * time.Second
	err := backoff.RetryNotify(func() error {
		return client.Ping(ctx).Err()
	}, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		log.Printf("⏳ Redis not ready (%v), retrying in %s", err, next.Round(time.Millisecond))
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Println("✅ Redis connected successfully")
	return client, nil
}

// RedisHistoryStore keeps search history in Redis lists
type RedisHistoryStore struct {
	client redis.Cmdable
	size   int
	ttl    time.Duration
}

// NewRedisHistoryStore creates a history store capped at size entries per user
func NewRedisHistoryStore(client redis.Cmdable, size int, ttl time.Duration) *RedisHistoryStore {
	return &RedisHistoryStore{client: client, size: size, ttl: ttl}
}

var _ HistoryStore = (*RedisHistoryStore)(nil)

// Push records query at the front of the user's history
func (s *RedisHistoryStore) Push(ctx context.Context, userID uuid.UUID, query string) error {
	key := historyKey(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, key, 0, query)
		pipe.LPush(ctx, key, query)
		pipe.LTrim(ctx, key, 0, int64(s.size-1))
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to push search history: %w", err)
	}
	return nil
}

// Recent returns the user's history, newest first
func (s *RedisHistoryStore) Recent(ctx context.Context, userID uuid.UUID) ([]string, error) {
	queries, err := s.client.LRange(ctx, historyKey(userID), 0, int64(s.size-1)).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read search history: %w", err)
	}
	if queries == nil {
		queries = []string{}
	}
	return queries, nil
}

// Clear drops the user's history
func (s *RedisHistoryStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, historyKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}
