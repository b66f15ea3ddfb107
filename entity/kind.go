package entity

import "time"

// Kind describes one entity kind for the generic bulk and cache code.
// I is the caller supplied creation input, E the persisted entity.
type Kind[I any, E any] interface {
	// Name is the singular display name, e.g. "Product".
	Name() string
	// UniqueKey returns the value that must be unique across the store.
	UniqueKey(input I) string
	// Build turns an accepted input into an entity carrying the server
	// assigned defaults. The identifier is assigned later by the store.
	Build(input I, now time.Time) (E, error)
	// ID returns the store assigned identifier of a persisted entity.
	ID(record E) string
	// FilterFields lists which fields a FilterSpec may reference.
	FilterFields() FieldSet
}

// NotFoundReason is the rejection reason used when an identifier does not exist.
func NotFoundReason(name string) string {
	return name + " not found"
}
