package cache

import "context"

// namespacedStore prefixes every key so several entity kinds can share one
// backend without their filtered pages colliding.
type namespacedStore struct {
	base   Store
	prefix string
}

// Namespace returns a Store that transparently prefixes keys with ns.
func Namespace(base Store, ns string) Store {
	if ns == "" {
		return base
	}
	return &namespacedStore{base: base, prefix: ns + KeySeparator}
}

func (n *namespacedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.base.Get(ctx, n.prefix+key)
}

func (n *namespacedStore) Set(ctx context.Context, key string, value []byte) error {
	return n.base.Set(ctx, n.prefix+key, value)
}

func (n *namespacedStore) Delete(ctx context.Context, key string) error {
	return n.base.Delete(ctx, n.prefix+key)
}

func (n *namespacedStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	return n.base.DeleteByPrefix(ctx, n.prefix+prefix)
}
