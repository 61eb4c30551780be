package views

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps every counter as a field of one Redis hash.
type RedisStore struct {
	rdb  *redis.Client
	hash string
}

func NewRedisStore(rdb *redis.Client, hash string) *RedisStore {
	return &RedisStore{rdb: rdb, hash: hash}
}

func (s *RedisStore) Backend() string { return "redis" }

func (s *RedisStore) Get(ctx context.Context, key string) (int64, error) {
	n, err := s.rdb.HGet(ctx, s.hash, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

func (s *RedisStore) Increment(ctx context.Context, key string) (int64, error) {
	return s.rdb.HIncrBy(ctx, s.hash, key, 1).Result()
}

func (s *RedisStore) All(ctx context.Context) (map[string]int64, error) {
	raw, err := s.rdb.HGetAll(ctx, s.hash).Result()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		counts[k] = n
	}
	return counts, nil
}
