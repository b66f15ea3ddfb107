package store

import (
	"context"
	"slices"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
	"github.com/uptrace/bun"
)

var (
	_ Gateway[*entity.User]    = (*Repository[*entity.User])(nil)
	_ Gateway[*entity.Product] = (*Repository[*entity.Product])(nil)
)

// Repository is the bun backed Gateway. Inserts go through the generic
// go-repository-bun repository. Lookups and deletes are plain bun queries:
// its List always pairs the select with a COUNT, and deletes need the
// affected row count.
type Repository[E any] struct {
	db       *bun.DB
	base     repository.Repository[E]
	handlers repository.ModelHandlers[E]
	newID    func() uuid.UUID
}

// NewRepository wires a gateway for the model described by handlers.
func NewRepository[E any](db *bun.DB, handlers repository.ModelHandlers[E]) *Repository[E] {
	return &Repository[E]{
		db:       db,
		base:     repository.NewRepository[E](db, handlers),
		handlers: handlers,
		newID:    uuid.New,
	}
}

// NewUserRepository returns the user gateway.
func NewUserRepository(db *bun.DB) *Repository[*entity.User] {
	return NewRepository(db, UserHandlers())
}

// NewProductRepository returns the product gateway.
func NewProductRepository(db *bun.DB) *Repository[*entity.Product] {
	return NewRepository(db, ProductHandlers())
}

// CreateMany assigns identifiers and inserts all records in one statement.
func (r *Repository[E]) CreateMany(ctx context.Context, records []E) ([]E, error) {
	if len(records) == 0 {
		return []E{}, nil
	}

	for _, record := range records {
		if r.handlers.GetID(record) == uuid.Nil {
			r.handlers.SetID(record, r.newID())
		}
	}

	created, err := r.base.CreateMany(ctx, records)
	if err != nil {
		return nil, wrapFault(err, "create many")
	}
	return created, nil
}

func (r *Repository[E]) FindByUniqueField(ctx context.Context, value string) (E, bool, error) {
	column := r.handlers.GetIdentifier()
	return r.findOne(ctx, "find by "+column, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("? = ?", bun.Ident(column), value)
	})
}

func (r *Repository[E]) FindByID(ctx context.Context, id string) (E, bool, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		var zero E
		return zero, false, nil
	}
	return r.findOne(ctx, "find by id", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("? = ?", bun.Ident("id"), parsed)
	})
}

func (r *Repository[E]) FindManyByIDs(ctx context.Context, ids []string) ([]E, error) {
	parsed := parseIDs(ids)
	if len(parsed) == 0 {
		return []E{}, nil
	}

	records, err := r.selectRecords(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("? IN (?)", bun.Ident("id"), bun.In(parsed)).Limit(len(parsed))
	})
	if err != nil {
		return nil, wrapFault(err, "find many by ids")
	}
	return records, nil
}

func (r *Repository[E]) DeleteManyByIDs(ctx context.Context, ids []string) (DeleteReport, error) {
	parsed := parseIDs(ids)
	if len(parsed) == 0 {
		return DeleteReport{Acknowledged: true}, nil
	}

	res, err := r.db.NewDelete().
		Model(r.handlers.NewRecord()).
		Where("? IN (?)", bun.Ident("id"), bun.In(parsed)).
		Exec(ctx)
	if err != nil {
		return DeleteReport{}, wrapFault(err, "delete many by ids")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		// The statement ran but the driver cannot tell how many rows went away.
		return DeleteReport{Acknowledged: false}, nil
	}
	return DeleteReport{Acknowledged: true, DeletedCount: int(affected)}, nil
}

func (r *Repository[E]) FindByFilter(ctx context.Context, spec entity.FilterSpec, page, pageSize int) ([]E, error) {
	criteria := filterCriteria(spec, r.db.Dialect().Name())

	records, err := r.selectRecords(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = criteria(q)
		return q.
			OrderExpr("? ASC, ? ASC", bun.Ident("created_at"), bun.Ident("id")).
			Offset((page - 1) * pageSize).
			Limit(pageSize)
	})
	if err != nil {
		return nil, wrapFault(err, "find by filter")
	}
	return records, nil
}

func (r *Repository[E]) findOne(ctx context.Context, op string, where repository.SelectCriteria) (E, bool, error) {
	var zero E
	records, err := r.selectRecords(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return where(q).Limit(1)
	})
	if err != nil {
		return zero, false, wrapFault(err, op)
	}
	if len(records) == 0 {
		return zero, false, nil
	}
	return records[0], true, nil
}

// selectRecords runs a single SELECT over the model table.
func (r *Repository[E]) selectRecords(ctx context.Context, criteria repository.SelectCriteria) ([]E, error) {
	records := []E{}
	if err := criteria(r.db.NewSelect().Model(&records)).Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// parseIDs drops identifiers that cannot exist in the store and duplicates.
func parseIDs(ids []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil || slices.Contains(out, parsed) {
			continue
		}
		out = append(out, parsed)
	}
	return out
}
