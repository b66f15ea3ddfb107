// Package service exposes the bulk mutation and filtered read operations of
// one entity kind as a single facade.
package service

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thomasdelmas/Ecommerce-sub000/bulk"
	"github.com/thomasdelmas/Ecommerce-sub000/cache"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
	"github.com/thomasdelmas/Ecommerce-sub000/repositorycache"
	"github.com/thomasdelmas/Ecommerce-sub000/store"
	"github.com/uptrace/bun"
)

// Options configure a Service.
type Options struct {
	Logger *log.Logger
	// Now stamps creation times. Defaults to time.Now.
	Now func() time.Time
	// Concurrency caps parallel existence checks during batch creation.
	Concurrency int
	// InvalidateOnWrite drops the filtered pages this service cached after
	// every write that changed the store. Off by default: cached pages are
	// allowed to lag behind writes.
	InvalidateOnWrite bool
}

// Service combines the batch creator, the batch deleter and the cached
// filtered reader of one entity kind.
type Service[I any, E any] struct {
	kind    entity.Kind[I, E]
	creator *bulk.Creator[I, E]
	deleter *bulk.Deleter[I, E]
	reader  *repositorycache.Reader[E]
	logger  *log.Logger

	invalidateOnWrite bool
}

// New wires a Service for kind on top of gateway and cacheStore.
func New[I any, E any](kind entity.Kind[I, E], gateway store.Gateway[E], cacheStore cache.Store, opts Options) *Service[I, E] {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("kind", kind.Name())

	bulkOpts := []bulk.Option{
		bulk.WithLogger(logger),
		bulk.WithConcurrency(opts.Concurrency),
	}
	if opts.Now != nil {
		bulkOpts = append(bulkOpts, bulk.WithClock(opts.Now))
	}

	return &Service[I, E]{
		kind:              kind,
		creator:           bulk.NewCreator[I, E](kind, gateway, bulkOpts...),
		deleter:           bulk.NewDeleter[I, E](kind, gateway, bulkOpts...),
		reader:            repositorycache.New[I, E](kind, gateway, cacheStore, repositorycache.WithLogger(logger)),
		logger:            logger,
		invalidateOnWrite: opts.InvalidateOnWrite,
	}
}

// NewUserService returns the user service backed by db.
func NewUserService(db *bun.DB, cacheStore cache.Store, hasher entity.Hasher, opts Options) *Service[entity.UserInput, *entity.User] {
	return New[entity.UserInput, *entity.User](entity.NewUserKind(hasher), store.NewUserRepository(db), cacheStore, opts)
}

// NewProductService returns the product service backed by db. Products are
// priced in currency, or entity.DefaultCurrency when empty.
func NewProductService(db *bun.DB, cacheStore cache.Store, currency string, opts Options) *Service[entity.ProductInput, *entity.Product] {
	return New[entity.ProductInput, *entity.Product](entity.NewProductKind(currency), store.NewProductRepository(db), cacheStore, opts)
}

// Kind returns the display name of the entity kind served.
func (s *Service[I, E]) Kind() string {
	return s.kind.Name()
}

// CreateBatch creates every input whose unique key is free. See bulk.Creator.
func (s *Service[I, E]) CreateBatch(ctx context.Context, inputs []I) (bulk.CreationResult[I, E], error) {
	result, err := s.creator.CreateBatch(ctx, inputs)
	if err != nil {
		s.logger.Error("batch create failed", "inputs", len(inputs), "err", err)
		return result, err
	}

	s.logger.Info("batch create",
		"status", result.Status(),
		"created", len(result.Created),
		"rejected", len(result.Rejected),
	)

	if len(result.Created) > 0 {
		s.afterWrite(ctx)
	}
	return result, nil
}

// DeleteBatch deletes the given identifiers. See bulk.Deleter.
func (s *Service[I, E]) DeleteBatch(ctx context.Context, ids []string) (bulk.DeletionResult, error) {
	result, err := s.deleter.DeleteBatch(ctx, ids)
	if err != nil {
		s.logger.Error("batch delete failed", "ids", len(ids), "err", err)
		return result, err
	}

	s.logger.Info("batch delete",
		"status", result.Status(),
		"deleted", len(result.SuccessIDs),
		"not_found", len(result.NotFound),
		"failed", len(result.Failed),
	)

	if len(result.SuccessIDs) > 0 {
		s.afterWrite(ctx)
	}
	return result, nil
}

// DeleteOne deletes a single identifier and reports whether it was removed.
func (s *Service[I, E]) DeleteOne(ctx context.Context, id string) (string, bool, error) {
	deleted, ok, err := s.deleter.DeleteOne(ctx, id)
	if err != nil {
		s.logger.Error("delete failed", "id", id, "err", err)
		return "", false, err
	}

	s.logger.Info("delete", "id", id, "deleted", ok)
	if ok {
		s.afterWrite(ctx)
	}
	return deleted, ok, nil
}

// ReadFiltered returns one page of entities matching spec, possibly from cache.
func (s *Service[I, E]) ReadFiltered(ctx context.Context, spec entity.FilterSpec, page, pageSize int) ([]E, error) {
	records, err := s.reader.ReadFiltered(ctx, spec, page, pageSize)
	if err != nil {
		s.logger.Error("filtered read failed", "page", page, "per_page", pageSize, "err", err)
		return nil, err
	}
	return records, nil
}

// FlushCache drops every cached filtered page of this kind from the backend.
func (s *Service[I, E]) FlushCache(ctx context.Context) error {
	if err := s.reader.InvalidateAll(ctx); err != nil {
		s.logger.Error("cache flush failed", "err", err)
		return err
	}
	s.logger.Info("cache flushed")
	return nil
}

// afterWrite runs the opt-in invalidation. A failure is logged and does not
// undo or fail the write that already happened.
func (s *Service[I, E]) afterWrite(ctx context.Context) {
	if !s.invalidateOnWrite {
		return
	}
	if err := s.reader.Invalidate(ctx); err != nil {
		s.logger.Warn("cache invalidation failed", "err", err)
	}
}
