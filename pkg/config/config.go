// Package config loads the catalogctl configuration from TOML.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/thomasdelmas/Ecommerce-sub000/cache"
	"github.com/thomasdelmas/Ecommerce-sub000/store"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Catalog  CatalogConfig  `toml:"catalog"`
}

// DatabaseConfig selects the SQL backend.
type DatabaseConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Backend string            `toml:"backend"`
	Memory  MemoryCacheConfig `toml:"memory"`
	Redis   RedisCacheConfig  `toml:"redis"`
}

type MemoryCacheConfig struct {
	Capacity           int      `toml:"capacity"`
	Shards             int      `toml:"shards"`
	TTL                Duration `toml:"ttl"`
	EvictionPercentage int      `toml:"eviction_percentage"`
	EvictionInterval   Duration `toml:"eviction_interval"`
}

type RedisCacheConfig struct {
	Addr      string   `toml:"addr"`
	Password  string   `toml:"password"`
	DB        int      `toml:"db"`
	TTL       Duration `toml:"ttl"`
	ScanCount int64    `toml:"scan_count"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// CORSOrigins enables CORS for the listed origins. Empty disables it.
	CORSOrigins []string `toml:"cors_origins"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// CatalogConfig tunes the entity services.
type CatalogConfig struct {
	Currency          string `toml:"currency"`
	BcryptCost        int    `toml:"bcrypt_cost"`
	Concurrency       int    `toml:"concurrency"`
	InvalidateOnWrite bool   `toml:"invalidate_on_write"`
}

// Duration is a time.Duration written as a string such as "90s" or "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Load reads the TOML file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result. Keys
// missing from data keep their default value.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded example configuration with the database
// switched to an in-memory sqlite instance.
func Default() *Config {
	var cfg Config
	if err := toml.Unmarshal(exampleConf, &cfg); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	cfg.Database.DSN = "file::memory:?cache=shared"
	return &cfg
}

// CreateConfigFile writes the example configuration to path. It refuses to
// overwrite an existing file.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.WriteFile(path, exampleConf, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Database),
		validation.Field(&c.Cache),
		validation.Field(&c.Server),
		validation.Field(&c.Log),
		validation.Field(&c.Catalog),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid configuration")
	}
	return nil
}

func (d DatabaseConfig) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Driver, validation.Required, validation.In(store.DriverSQLite, store.DriverPostgres)),
		validation.Field(&d.DSN, validation.Required),
	)
}

func (c CacheConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.Required, validation.In(cache.BackendMemory, cache.BackendRedis)),
		validation.Field(&c.Memory, validation.By(func(any) error {
			if c.Backend != cache.BackendMemory {
				return nil
			}
			return c.ToCache().Validate()
		})),
		validation.Field(&c.Redis, validation.By(func(any) error {
			if c.Backend != cache.BackendRedis {
				return nil
			}
			return c.ToCache().Validate()
		})),
	)
}

func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required),
	)
}

func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.By(func(any) error {
			_, err := l.ParseLevel()
			return err
		})),
	)
}

func (c CatalogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Currency, validation.Length(3, 3)),
		validation.Field(&c.BcryptCost, validation.Min(4), validation.Max(31)),
		validation.Field(&c.Concurrency, validation.Min(0)),
	)
}

// ParseLevel converts the configured level name.
func (l LogConfig) ParseLevel() (log.Level, error) {
	return log.ParseLevel(l.Level)
}

// ToCache converts the section into the cache package configuration.
func (c CacheConfig) ToCache() cache.Config {
	return cache.Config{
		Backend: c.Backend,
		Memory: cache.MemoryConfig{
			Capacity:           c.Memory.Capacity,
			NumShards:          c.Memory.Shards,
			TTL:                c.Memory.TTL.Duration,
			EvictionPercentage: c.Memory.EvictionPercentage,
			EvictionInterval:   c.Memory.EvictionInterval.Duration,
		},
		Redis: cache.RedisConfig{
			Addr:      c.Redis.Addr,
			Password:  c.Redis.Password,
			DB:        c.Redis.DB,
			TTL:       c.Redis.TTL.Duration,
			ScanCount: c.Redis.ScanCount,
		},
	}
}
