// Package repositorycache serves filtered, paginated entity reads through a
// cache-aside layer in front of a store gateway.
//
// # Overview
//
// A Reader derives a deterministic key from the filter, the page and the
// page size (see cache.FilterKey), consults the cache and falls back to the
// store on a miss. Whatever the store returns, including an empty page, is
// written back under the same key before the result is handed to the caller.
//
// Cached pages are returned verbatim. Writes to the store do not touch the
// cache, so a cached page may lag behind the store until its entry expires
// or the caller invalidates it explicitly:
//
//	reader := repositorycache.New(kind, productRepo, cacheStore)
//	page, err := reader.ReadFiltered(ctx, spec, 1, 20)
//	...
//	_ = reader.Invalidate(ctx) // drop pages this reader populated
//
// # Keys
//
// Keys are namespaced per entity kind, "product::filterKey:<hash>:page:1:productPerPage:20",
// so several kinds can share one backend. Filters that differ only in map
// insertion order or set member order map to the same key.
//
// # Faults
//
// Validation failures carry goerrors.CategoryValidation. Cache faults carry
// cache.CategoryCache and are never treated as misses. Store faults are
// propagated unchanged.
package repositorycache
