package di

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/thomasdelmas/Ecommerce-sub000/cache"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
	"github.com/thomasdelmas/Ecommerce-sub000/internal/httpapi"
	"github.com/thomasdelmas/Ecommerce-sub000/pkg/config"
	"github.com/thomasdelmas/Ecommerce-sub000/service"
	"github.com/thomasdelmas/Ecommerce-sub000/store"
	"github.com/uptrace/bun"
)

// ProductService and UserService name the two concrete services.
type (
	ProductService = service.Service[entity.ProductInput, *entity.Product]
	UserService    = service.Service[entity.UserInput, *entity.User]
)

// Container owns the process wide singletons: logger, database handle,
// cache backend and the per kind services built on top of them.
type Container struct {
	config   *config.Config
	logger   *log.Logger
	db       *bun.DB
	cache    cache.Store
	products *ProductService
	users    *UserService

	ownsCache bool
}

// Option customises container construction.
type Option func(*containerOptions)

type containerOptions struct {
	logger *log.Logger
	cache  cache.Store
	now    func() time.Time
}

// WithLogger replaces the logger built from the log section.
func WithLogger(l *log.Logger) Option {
	return func(o *containerOptions) { o.logger = l }
}

// WithCacheStore injects a cache backend instead of building one from the
// cache section. The container does not close an injected store.
func WithCacheStore(s cache.Store) Option {
	return func(o *containerOptions) { o.cache = s }
}

// WithClock overrides the creation timestamp source of both services.
func WithClock(now func() time.Time) Option {
	return func(o *containerOptions) { o.now = now }
}

// NewLogger creates a logger writing to w with timestamps and caller
// reporting enabled. The writer defaults to os.Stderr.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{ReportTimestamp: true, ReportCaller: true})
	l.SetLevel(level)
	return l
}

// NewContainer opens the database, applies the schema, builds the cache
// backend and wires both entity services from cfg.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o containerOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		level, err := cfg.Log.ParseLevel()
		if err != nil {
			return nil, err
		}
		logger = NewLogger(nil, level)
	}

	db, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	c := &Container{config: cfg, logger: logger, db: db, cache: o.cache}
	if c.cache == nil {
		cacheStore, err := cache.NewStore(cfg.Cache.ToCache())
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to build cache store: %w", err)
		}
		c.cache = cacheStore
		c.ownsCache = true
	}

	svcOpts := service.Options{
		Logger:            logger,
		Now:               o.now,
		Concurrency:       cfg.Catalog.Concurrency,
		InvalidateOnWrite: cfg.Catalog.InvalidateOnWrite,
	}
	c.products = service.NewProductService(db, c.cache, cfg.Catalog.Currency, svcOpts)
	c.users = service.NewUserService(db, c.cache, entity.NewBcryptHasher(cfg.Catalog.BcryptCost), svcOpts)

	logger.Debug("container ready",
		"driver", cfg.Database.Driver,
		"cache", cfg.Cache.Backend,
		"invalidate_on_write", cfg.Catalog.InvalidateOnWrite,
	)

	return c, nil
}

// NewContainerWithDefaults builds a container over an in-memory sqlite
// database and the in-memory cache.
func NewContainerWithDefaults(ctx context.Context, opts ...Option) (*Container, error) {
	return NewContainer(ctx, config.Default(), opts...)
}

// Config returns the configuration the container was built from.
func (c *Container) Config() *config.Config {
	return c.config
}

func (c *Container) Logger() *log.Logger {
	return c.logger
}

func (c *Container) DB() *bun.DB {
	return c.db
}

// CacheStore returns the cache backend shared by both services. Entries of
// each kind live under their own namespace.
func (c *Container) CacheStore() cache.Store {
	return c.cache
}

func (c *Container) Products() *ProductService {
	return c.products
}

func (c *Container) Users() *UserService {
	return c.users
}

// Router builds the HTTP handler exposing both services.
func (c *Container) Router() *gin.Engine {
	return httpapi.NewRouter(httpapi.Deps{
		Products:    c.products,
		Users:       c.users,
		Logger:      c.logger,
		CORSOrigins: c.config.Server.CORSOrigins,
	})
}

// FlushCache drops every cached filtered page of both kinds.
func (c *Container) FlushCache(ctx context.Context) error {
	return errors.Join(c.products.FlushCache(ctx), c.users.FlushCache(ctx))
}

// Close releases the cache backend and the database handle.
func (c *Container) Close() error {
	var errs []error
	if closer, ok := c.cache.(io.Closer); ok && c.ownsCache {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close cache: %w", err))
		}
	}
	if err := c.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}
	return errors.Join(errs...)
}
