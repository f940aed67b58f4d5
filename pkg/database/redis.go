package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"short_video_service/pkg/logger"
)

// ErrCacheMiss key 不存在
var ErrCacheMiss = errors.New("redis: key not found")

// RedisRepository 以 JSON 存取 T, key 會加上 prefix
type RedisRepository[T any] interface {
	Set(ctx context.Context, key string, value T, ttl time.Duration) error
	Get(ctx context.Context, key string) (T, error)
	Del(ctx context.Context, key string) error
	GetTTL(ctx context.Context, key string) (int, error)
	ExtendTTL(ctx context.Context, key string, ttl time.Duration) error
}

type redisRepository[T any] struct {
	client *redis.Client
	prefix string
}

// NewRedisClient 有 sentinel 時使用 failover client, 否則連單機 addr
func NewRedisClient(masterName string, sentinelAddrs []string, addr string, db int) (*redis.Client, error) {
	var rdb *redis.Client
	if len(sentinelAddrs) > 0 {
		rdb = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    masterName,
			SentinelAddrs: sentinelAddrs,
			DB:            db,
		})
	} else {
		rdb = redis.NewClient(&redis.Options{Addr: addr, DB: db})
	}

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

// NewRedisRepository init Redis repository (Set, Get, Del, GetTTL, ExtendTTL)
func NewRedisRepository[T any](client *redis.Client, prefix string) RedisRepository[T] {
	return &redisRepository[T]{client: client, prefix: prefix}
}

func (r *redisRepository[T]) key(k string) string {
	return r.prefix + k
}

func (r *redisRepository[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

func (r *redisRepository[T]) Get(ctx context.Context, key string) (T, error) {
	var result T
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return result, ErrCacheMiss
	} else if err != nil {
		return result, fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := json.Unmarshal(val, &result); err != nil {
		logger.Log.Error("redis unmarshal failed", zap.String("key", key), zap.Error(err))
		return result, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return result, nil
}

func (r *redisRepository[T]) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *redisRepository[T]) ExtendTTL(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Expire(ctx, r.key(key), ttl).Err()
}

// GetTTL 剩餘秒數 (無條件進位); key 不存在或沒有期限回傳 0
func (r *redisRepository[T]) GetTTL(ctx context.Context, key string) (int, error) {
	ttl, err := r.client.TTL(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	} else if err != nil {
		return 0, fmt.Errorf("failed to get TTL for key %s: %w", key, err)
	}

	return ttlSeconds(ttl), nil
}

// ttlSeconds 不足一秒仍算一秒, 負值 (沒有期限或不存在) 為 0
func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int((ttl + time.Second - 1) / time.Second)
}
