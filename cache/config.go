package cache

import (
	"fmt"
	"time"

	"github.com/thomasdelmas/Ecommerce-sub000/internal/cacheinfra"
)

// Supported cache backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	Backend string
	Memory  MemoryConfig
	Redis   RedisConfig
}

// MemoryConfig mirrors the sturdyc backend options.
type MemoryConfig struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
	EvictionInterval   time.Duration
}

// RedisConfig mirrors the Redis backend options.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	TTL       time.Duration
	ScanCount int64
}

// DefaultConfig returns the in-memory backend with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendMemory,
		Memory:  memoryFromInternal(cacheinfra.DefaultConfig()),
		Redis:   redisFromInternal(cacheinfra.DefaultRedisConfig()),
	}
}

// Validate checks whether the configuration of the selected backend is valid.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, "":
		return c.Memory.toInternal().Validate()
	case BackendRedis:
		return c.Redis.toInternal().Validate()
	default:
		return &cacheinfra.ConfigError{Field: "Backend", Message: fmt.Sprintf("unknown backend %q", c.Backend)}
	}
}

// NewStore constructs the backend selected by cfg.Backend.
func NewStore(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		store, err := cacheinfra.NewSturdycStore(cfg.Memory.toInternal())
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendRedis:
		store, err := cacheinfra.NewRedisStore(cfg.Redis.toInternal())
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, cfg.Validate()
	}
}

func (c MemoryConfig) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func (c RedisConfig) toInternal() cacheinfra.RedisConfig {
	return cacheinfra.RedisConfig{
		Addr:      c.Addr,
		Password:  c.Password,
		DB:        c.DB,
		TTL:       c.TTL,
		ScanCount: c.ScanCount,
	}
}

func memoryFromInternal(cfg cacheinfra.Config) MemoryConfig {
	return MemoryConfig{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}

func redisFromInternal(cfg cacheinfra.RedisConfig) RedisConfig {
	return RedisConfig{
		Addr:      cfg.Addr,
		Password:  cfg.Password,
		DB:        cfg.DB,
		TTL:       cfg.TTL,
		ScanCount: cfg.ScanCount,
	}
}
