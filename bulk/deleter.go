package bulk

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
	"github.com/thomasdelmas/Ecommerce-sub000/store"
)

// DeleteGateway is the slice of the store a Deleter needs.
type DeleteGateway[E any] interface {
	FindManyByIDs(ctx context.Context, ids []string) ([]E, error)
	DeleteManyByIDs(ctx context.Context, ids []string) (store.DeleteReport, error)
}

// Deleter removes identifiers in bulk and reconciles the outcome per id.
type Deleter[I any, E any] struct {
	kind  entity.Kind[I, E]
	store DeleteGateway[E]
	opts  Options
}

func NewDeleter[I any, E any](kind entity.Kind[I, E], store DeleteGateway[E], opts ...Option) *Deleter[I, E] {
	return &Deleter[I, E]{
		kind:  kind,
		store: store,
		opts:  buildOptions(opts),
	}
}

// DeleteBatch deletes the identifiers that exist and partitions the request
// into not found, deleted and still present. It issues at most two reads and
// one delete regardless of the request size. Identifiers are matched in their
// canonical uuid form, so braced, urn and upper case spellings of the same id
// land in the same bucket; duplicates are reported once per occurrence.
func (d *Deleter[I, E]) DeleteBatch(ctx context.Context, ids []string) (DeletionResult, error) {
	result := DeletionResult{
		SuccessIDs: []string{},
		NotFound:   []Failure{},
		Failed:     []Failure{},
	}
	if len(ids) == 0 {
		return result, nil
	}

	canonical := make([]string, len(ids))
	lookup := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		c, ok := canonicalID(id)
		if !ok {
			continue
		}
		canonical[i] = c
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		lookup = append(lookup, c)
	}

	var existing []E
	if len(lookup) > 0 {
		var err error
		existing, err = d.store.FindManyByIDs(ctx, lookup)
		if err != nil {
			return DeletionResult{}, err
		}
	}

	present := make(map[string]struct{}, len(existing))
	confirmed := make([]string, 0, len(existing))
	for _, record := range existing {
		id, ok := canonicalID(d.kind.ID(record))
		if !ok {
			continue
		}
		if _, dup := present[id]; dup {
			continue
		}
		present[id] = struct{}{}
		confirmed = append(confirmed, id)
	}

	notFound := entity.NotFoundReason(d.kind.Name())
	requested := make([]int, 0, len(ids))
	for i, id := range ids {
		if canonical[i] != "" {
			if _, ok := present[canonical[i]]; ok {
				requested = append(requested, i)
				continue
			}
		}
		result.NotFound = append(result.NotFound, Failure{ID: id, Reason: notFound})
	}

	if len(confirmed) == 0 {
		return result, nil
	}

	report, err := d.store.DeleteManyByIDs(ctx, confirmed)
	if err != nil {
		return DeletionResult{}, err
	}

	if report.Acknowledged && report.DeletedCount >= len(confirmed) {
		for _, i := range requested {
			result.SuccessIDs = append(result.SuccessIDs, ids[i])
		}
		return result, nil
	}

	d.opts.Logger.Debug("delete count short, verifying",
		"kind", d.kind.Name(),
		"requested", len(confirmed),
		"deleted", report.DeletedCount,
		"acknowledged", report.Acknowledged,
	)

	survivors, err := d.store.FindManyByIDs(ctx, confirmed)
	if err != nil {
		return DeletionResult{}, err
	}

	stillPresent := make(map[string]struct{}, len(survivors))
	for _, record := range survivors {
		if id, ok := canonicalID(d.kind.ID(record)); ok {
			stillPresent[id] = struct{}{}
		}
	}

	for _, i := range requested {
		if _, ok := stillPresent[canonical[i]]; ok {
			result.Failed = append(result.Failed, Failure{ID: ids[i], Reason: ReasonCouldNotDelete})
			continue
		}
		result.SuccessIDs = append(result.SuccessIDs, ids[i])
	}

	return result, nil
}

// DeleteOne runs the batch path for a single identifier and reports whether
// it was deleted.
func (d *Deleter[I, E]) DeleteOne(ctx context.Context, id string) (string, bool, error) {
	result, err := d.DeleteBatch(ctx, []string{id})
	if err != nil {
		return "", false, err
	}
	for _, deleted := range result.SuccessIDs {
		if deleted == id {
			return id, true, nil
		}
	}
	return "", false, nil
}

// canonicalID returns the form the store keys rows by. Identifiers that do
// not parse as a uuid can never match a row.
func canonicalID(id string) (string, bool) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}
