package cacheinfra

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// TTL of 0 keeps pages until they are explicitly deleted.
	TTL time.Duration
	// ScanCount is the COUNT hint used while deleting by prefix.
	ScanCount int64
}

// DefaultRedisConfig targets a local Redis without expiry.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:      "localhost:6379",
		ScanCount: 100,
	}
}

// Validate checks if the configuration values are valid.
func (c RedisConfig) Validate() error {
	if c.Addr == "" {
		return &ConfigError{Field: "Addr", Message: "must not be empty"}
	}
	if c.DB < 0 {
		return &ConfigError{Field: "DB", Message: "must be non-negative"}
	}
	if c.TTL < 0 {
		return &ConfigError{Field: "TTL", Message: "must be non-negative"}
	}
	if c.ScanCount < 0 {
		return &ConfigError{Field: "ScanCount", Message: "must be non-negative"}
	}
	return nil
}

// RedisStore keeps serialized pages in Redis strings.
type RedisStore struct {
	client    redis.UniversalClient
	ttl       time.Duration
	scanCount int64
}

// NewRedisStore validates cfg and connects a client. The connection is lazy,
// the first command surfaces transport faults.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return NewRedisStoreFromClient(client, cfg.TTL, cfg.ScanCount), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client redis.UniversalClient, ttl time.Duration, scanCount int64) *RedisStore {
	if scanCount <= 0 {
		scanCount = 100
	}
	return &RedisStore{client: client, ttl: ttl, scanCount: scanCount}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// DeleteByPrefix collects every key under prefix with SCAN and then deletes
// them in chunks of the scan count.
func (s *RedisStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	pattern := globEscaper.Replace(prefix) + "*"

	// SCAN cursors move over a changing keyspace, so every match is gathered
	// before anything is deleted.
	var matched []string
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, s.scanCount).Result()
		if err != nil {
			return err
		}
		matched = append(matched, keys...)
		if next == 0 {
			break
		}
		cursor = next
	}

	chunk := int(s.scanCount)
	for start := 0; start < len(matched); start += chunk {
		end := min(start+chunk, len(matched))
		if err := s.client.Del(ctx, matched[start:end]...).Err(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
