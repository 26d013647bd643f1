package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter persists values as JSON strings in Redis. Values carry no
// TTL: settings and history are durable state, not cache entries.
type RedisAdapter struct {
	rdb *redis.Client
}

// NewRedisAdapter connects to Redis and verifies the connection.
func NewRedisAdapter(ctx context.Context, addr, password string, db int) (*RedisAdapter, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisAdapter{rdb: rdb}, nil
}

func (r *RedisAdapter) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, wrapErr("get", key, err)
	}
	return val, true, nil
}

func (r *RedisAdapter) Set(ctx context.Context, key string, value any) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return wrapErr("set", key, err)
	}
	if err := r.rdb.Set(ctx, key, bytes, 0).Err(); err != nil {
		return wrapErr("set", key, err)
	}
	return nil
}

func (r *RedisAdapter) Remove(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return wrapErr("remove", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *RedisAdapter) Close() error {
	return r.rdb.Close()
}
