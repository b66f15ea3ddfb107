// Package bulk applies batched mutations to an entity store and folds the
// independent, partially failing per-item decisions into one result value.
//
// Creator partitions a batch of creation inputs into created entities and
// rejected inputs. Duplicates inside the batch and keys already present in
// the store are rejections; everything else is written with a single
// CreateMany call.
//
// Deleter removes a set of identifiers and reconciles which deletions took
// effect. When the store reports fewer deletions than requested, the
// surviving identifiers are re-read once; the delete itself is never retried.
//
// Business outcomes (duplicate, not found, could not delete) are values in
// the result. Store faults abort the whole call and are returned unchanged.
package bulk
