package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/linemark/linemark/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisTokenStore keeps refresh tokens in Redis with a TTL matching the
// token expiry, so expired tokens vanish without a sweeper. Used instead
// of the database-backed store when REDIS_URL is configured.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(redisURL string) (*RedisTokenStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTokenStore{client: client}, nil
}

func tokenKey(token string) string {
	return "refresh_token:" + token
}

func (s *RedisTokenStore) Save(token *models.RefreshToken) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return err
	}
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("refresh token already expired")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.client.Set(ctx, tokenKey(token.Token), payload, ttl).Err()
}

func (s *RedisTokenStore) Find(token string) (*models.RefreshToken, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	payload, err := s.client.Get(ctx, tokenKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var rt models.RefreshToken
	if err := json.Unmarshal(payload, &rt); err != nil {
		return nil, err
	}
	return &rt, nil
}

func (s *RedisTokenStore) Revoke(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	deleted, err := s.client.Del(ctx, tokenKey(token)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the underlying Redis connection pool.
func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}
