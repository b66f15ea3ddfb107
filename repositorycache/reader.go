package repositorycache

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/thomasdelmas/Ecommerce-sub000/cache"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
)

// FilterGateway is the slice of the store a Reader needs.
type FilterGateway[E any] interface {
	FindByFilter(ctx context.Context, spec entity.FilterSpec, page, pageSize int) ([]E, error)
}

// KeyFunc derives the cache key of one filtered page.
type KeyFunc func(spec entity.FilterSpec, page, pageSize int) string

// Reader serves filtered, paginated reads cache-aside.
type Reader[E any] struct {
	base        FilterGateway[E]
	cache       cache.Store
	fields      entity.FieldSet
	keyFn       KeyFunc
	logger      *log.Logger
	keyRegistry *xsync.MapOf[string, struct{}] // keys populated by this reader
}

// Option configures a Reader.
type Option func(*readerConfig)

type readerConfig struct {
	logger *log.Logger
	keyFn  KeyFunc
}

func WithLogger(logger *log.Logger) Option {
	return func(c *readerConfig) {
		c.logger = logger
	}
}

// WithKeyFunc replaces cache.FilterKey.
func WithKeyFunc(fn KeyFunc) Option {
	return func(c *readerConfig) {
		c.keyFn = fn
	}
}

// New creates a Reader for one entity kind. Keys are namespaced with the
// snake cased kind name so kinds can share a cache backend.
func New[I any, E any](kind entity.Kind[I, E], base FilterGateway[E], store cache.Store, opts ...Option) *Reader[E] {
	cfg := readerConfig{keyFn: cache.FilterKey}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	return &Reader[E]{
		base:        base,
		cache:       cache.Namespace(store, namespaceFor(kind.Name())),
		fields:      kind.FilterFields(),
		keyFn:       cfg.keyFn,
		logger:      cfg.logger,
		keyRegistry: xsync.NewMapOf[string, struct{}](),
	}
}

// ReadFiltered returns one page of entities matching spec.
//
// A cached page is returned verbatim without checking the store, so it can
// be stale. On a miss the store result, empty or not, is written back before
// returning. Faults from either side abort the read; a cache fault is never
// downgraded to a miss.
func (r *Reader[E]) ReadFiltered(ctx context.Context, spec entity.FilterSpec, page, pageSize int) ([]E, error) {
	if err := r.validate(spec, page, pageSize); err != nil {
		return nil, err
	}

	key := r.keyFn(spec, page, pageSize)

	data, found, err := r.cache.Get(ctx, key)
	if err != nil {
		return nil, cache.WrapFault(err, "get filtered page")
	}
	if found {
		records, err := cache.DecodeList[E](data)
		if err != nil {
			return nil, cache.WrapFault(err, "decode filtered page")
		}
		r.logger.Debug("filtered read hit", "key", key, "records", len(records))
		return records, nil
	}

	records, err := r.base.FindByFilter(ctx, spec, page, pageSize)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []E{}
	}

	data, err = cache.EncodeList(records)
	if err != nil {
		return nil, cache.WrapFault(err, "encode filtered page")
	}
	if err := r.cache.Set(ctx, key, data); err != nil {
		return nil, cache.WrapFault(err, "set filtered page")
	}
	r.trackKey(key)

	r.logger.Debug("filtered read miss", "key", key, "records", len(records))
	return records, nil
}

// Invalidate drops every page this reader populated. Nothing calls it
// implicitly: writes leave cached pages in place unless the caller opts in.
func (r *Reader[E]) Invalidate(ctx context.Context) error {
	var keys []string
	r.keyRegistry.Range(func(key string, _ struct{}) bool {
		keys = append(keys, key)
		return true
	})

	for _, key := range keys {
		if err := r.cache.Delete(ctx, key); err != nil {
			return cache.WrapFault(err, "invalidate filtered page")
		}
		r.keyRegistry.Delete(key)
	}
	return nil
}

// InvalidateAll drops every filtered page of this kind in the backend,
// including pages populated by other processes.
func (r *Reader[E]) InvalidateAll(ctx context.Context) error {
	if err := r.cache.DeleteByPrefix(ctx, cache.FilterKeyPrefix); err != nil {
		return cache.WrapFault(err, "invalidate filtered pages")
	}
	r.keyRegistry.Clear()
	return nil
}

// TrackedKeys returns how many pages this reader populated and still tracks.
func (r *Reader[E]) TrackedKeys() int {
	return r.keyRegistry.Size()
}

func (r *Reader[E]) trackKey(key string) {
	r.keyRegistry.Store(key, struct{}{})
}

func (r *Reader[E]) validate(spec entity.FilterSpec, page, pageSize int) error {
	err := validation.Errors{
		"page":     validation.Validate(page, validation.Required, validation.Min(1)),
		"per_page": validation.Validate(pageSize, validation.Required, validation.Min(1)),
		"filter":   spec.Validate(r.fields),
	}.Filter()
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid filtered read")
	}
	return nil
}
