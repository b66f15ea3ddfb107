package cache

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// CategoryCache tags every fault raised by a cache backend.
var CategoryCache = goerrors.CategoryExternal.Extend("cache")

// Store is the cache gateway: opaque keys mapped to serialized entity lists.
// Backends report transport faults as errors and never mask them as misses.
type Store interface {
	// Get returns the stored payload and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// KeySerializer builds a cache key from a namespace and arbitrary args.
// Equal values must produce equal keys regardless of map insertion order.
type KeySerializer interface {
	SerializeKey(namespace string, args ...any) string
}

// WrapFault tags err as a cache fault, keeping the source reachable.
func WrapFault(err error, op string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, CategoryCache, op)
}
