package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahilchouksey/task-tracker/utils/cache"
)

// RedisMedium keeps each snapshot under a single key.
type RedisMedium struct {
	cache  *cache.RedisCache
	prefix string
}

// NewRedisMedium connects to redisURL. Keys are "<prefix><name>".
func NewRedisMedium(redisURL, prefix string) (*RedisMedium, error) {
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisMedium{cache: redisCache, prefix: prefix}, nil
}

func (m *RedisMedium) key(name string) string {
	return m.prefix + name
}

func (m *RedisMedium) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := m.cache.GetBytes(ctx, m.key(name))
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from redis: %w", name, err)
	}
	return data, nil
}

func (m *RedisMedium) Write(ctx context.Context, name string, data []byte) error {
	if err := m.cache.Set(ctx, m.key(name), data, 0); err != nil {
		return fmt.Errorf("failed to write %s to redis: %w", name, err)
	}
	return nil
}

func (m *RedisMedium) Ping(ctx context.Context) error {
	return m.cache.Ping(ctx)
}

func (m *RedisMedium) Close() error {
	return m.cache.Close()
}
