// Package cache provides the cache gateway used by filtered reads, the
// canonical key serialization those reads are keyed with, and the codec for
// the cached entity lists.
//
// # Overview
//
//   - Store: get/set/delete of opaque byte payloads under string keys
//   - KeySerializer: builds stable keys from a namespace and arbitrary args
//   - FilterKey: the key of one page of a filtered read
//   - EncodeList / DecodeList: msgpack codec for ordered entity lists
//
// # Backends
//
// NewStore builds one of two backends from Config:
//
//   - memory: a sharded sturdyc client, suited to a single process
//   - redis: a go-redis client, shared between processes
//
// Several entity kinds sharing one backend should each go through
// Namespace so that equal filters on different kinds never collide.
//
// # Key Serialization Strategy
//
// Filter keys hash a canonical serialization of the filter:
//
//   - Maps: key=value pairs sorted, so insertion order is irrelevant
//   - Structs: exported fields sorted by json name
//   - Pointers and interfaces: dereferenced, nil renders as "nil"
//   - Slices: element order is kept; set semantics are applied by the
//     caller before serializing (see entity.FilterSpec.Canonical)
//   - Floats: shortest round-trip representation
//
// Funcs and channels have no stable value and render as "unsupported:<type>".
//
// # Error Handling
//
// Backends return transport faults as errors. Callers wrap them with
// WrapFault so they carry CategoryCache; a fault is never turned into a miss.
//
// # Limitations
//
// Nothing in this package invalidates filtered pages when entities change.
// A page stays cached until the backend evicts it or a caller deletes it.
package cache
