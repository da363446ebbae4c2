// Package cache keeps the public exam listings in Redis so the
// unauthenticated catalog endpoints do not hit Postgres on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyPrelimsFree        = "catalog:prelims:free"
	KeyPrelimsFreeAndPaid = "catalog:prelims:free-and-paid"
	KeyMainsFree          = "catalog:mains:free"
)

// PrelimsKeys are dropped whenever a Prelims exam is created or deleted.
var PrelimsKeys = []string{KeyPrelimsFree, KeyPrelimsFreeAndPaid}

// MainsKeys are dropped whenever a Mains exam is created or deleted.
var MainsKeys = []string{KeyMainsFree}

type Catalog interface {
	// Get decodes the cached value into dst and reports whether it was present.
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context, keys ...string) error
}

type RedisCatalog struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCatalog(client redis.UniversalClient, ttl time.Duration) *RedisCatalog {
	return &RedisCatalog{client: client, ttl: ttl}
}

// Connect pings addr and returns a catalog backed by it.
func Connect(ctx context.Context, addr, password string, ttl time.Duration) (*RedisCatalog, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewRedisCatalog(client, ttl), nil
}

func (r *RedisCatalog) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisCatalog) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCatalog) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *RedisCatalog) Close() error {
	return r.client.Close()
}

// NopCatalog is used when REDIS_ADDR is unset; every lookup misses.
type NopCatalog struct{}

func (NopCatalog) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NopCatalog) Set(context.Context, string, interface{}) error         { return nil }
func (NopCatalog) Invalidate(context.Context, ...string) error            { return nil }
