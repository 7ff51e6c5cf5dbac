package services

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const pageCacheKeyPrefix = "pagecache:"

// PageCache stores rendered page bodies keyed by request URI.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}

type RedisPageCache struct {
	client *redis.Client
}

func NewRedisPageCache(addr, password string, db int) (*RedisPageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisPageCache{client: client}, nil
}

func (rpc *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := rpc.client.Get(ctx, pageCacheKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (rpc *RedisPageCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return rpc.client.Set(ctx, pageCacheKeyPrefix+key, body, ttl).Err()
}

func (rpc *RedisPageCache) Clear(ctx context.Context) error {
	iter := rpc.client.Scan(ctx, 0, pageCacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := rpc.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (rpc *RedisPageCache) Close() error {
	return rpc.client.Close()
}

type memoryPageEntry struct {
	body      []byte
	expiresAt time.Time
}

// MemoryPageCache is an in-process PageCache used in tests.
type MemoryPageCache struct {
	mutex   sync.Mutex
	entries map[string]memoryPageEntry
}

func NewMemoryPageCache() *MemoryPageCache {
	return &MemoryPageCache{entries: make(map[string]memoryPageEntry)}
}

func (mpc *MemoryPageCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	mpc.mutex.Lock()
	defer mpc.mutex.Unlock()
	entry, ok := mpc.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(mpc.entries, key)
		return nil, false, nil
	}
	return entry.body, true, nil
}

func (mpc *MemoryPageCache) Set(_ context.Context, key string, body []byte, ttl time.Duration) error {
	mpc.mutex.Lock()
	defer mpc.mutex.Unlock()
	mpc.entries[key] = memoryPageEntry{
		body:      append([]byte(nil), body...),
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (mpc *MemoryPageCache) Clear(_ context.Context) error {
	mpc.mutex.Lock()
	defer mpc.mutex.Unlock()
	mpc.entries = make(map[string]memoryPageEntry)
	return nil
}
