// Package store implements the entity store gateway on top of bun and
// go-repository-bun, one repository per entity kind.
package store

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
)

// CategoryStore tags every fault raised by a store gateway.
var CategoryStore = goerrors.CategoryExternal.Extend("store")

// DeleteReport is the aggregate answer of a bulk delete.
type DeleteReport struct {
	Acknowledged bool
	DeletedCount int
}

// Gateway is the persistence contract the bulk engine and the cached reader
// consume for one entity kind.
type Gateway[E any] interface {
	// CreateMany persists every record or none of them.
	CreateMany(ctx context.Context, records []E) ([]E, error)
	FindByUniqueField(ctx context.Context, value string) (E, bool, error)
	FindByID(ctx context.Context, id string) (E, bool, error)
	// FindManyByIDs silently omits identifiers that do not exist.
	FindManyByIDs(ctx context.Context, ids []string) ([]E, error)
	DeleteManyByIDs(ctx context.Context, ids []string) (DeleteReport, error)
	FindByFilter(ctx context.Context, spec entity.FilterSpec, page, pageSize int) ([]E, error)
}

func wrapFault(err error, op string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, CategoryStore, op)
}
