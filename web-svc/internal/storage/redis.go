package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisCartStorage keeps cart slots as plain string keys. Slots never
// expire; they live until cleared or the store is flushed.
type RedisCartStorage struct {
	Client *redis.Client
}

func NewRedisCartStorage(client *redis.Client) *RedisCartStorage {
	return &RedisCartStorage{Client: client}
}

func (s *RedisCartStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *RedisCartStorage) Save(ctx context.Context, key string, value []byte) error {
	return s.Client.Set(ctx, key, value, 0).Err()
}
