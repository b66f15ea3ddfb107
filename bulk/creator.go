package bulk

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
	"github.com/thomasdelmas/Ecommerce-sub000/store"
	"golang.org/x/sync/errgroup"
)

// CreateGateway is the slice of the store a Creator needs.
type CreateGateway[E any] interface {
	FindByUniqueField(ctx context.Context, value string) (E, bool, error)
	CreateMany(ctx context.Context, records []E) ([]E, error)
}

// Creator partitions creation batches for one entity kind.
type Creator[I any, E any] struct {
	kind  entity.Kind[I, E]
	store CreateGateway[E]
	opts  Options
}

func NewCreator[I any, E any](kind entity.Kind[I, E], store CreateGateway[E], opts ...Option) *Creator[I, E] {
	return &Creator[I, E]{
		kind:  kind,
		store: store,
		opts:  buildOptions(opts),
	}
}

// decision is the per-input verdict of the check phase.
type decision[E any] struct {
	candidate E
	accepted  bool
	reason    string
}

// CreateBatch checks every input independently, then writes all surviving
// candidates with at most one CreateMany call.
//
// The existence checks run concurrently and must all settle before the
// write. A store fault in either phase fails the whole batch and discards
// the decisions already taken.
func (c *Creator[I, E]) CreateBatch(ctx context.Context, inputs []I) (CreationResult[I, E], error) {
	result := CreationResult[I, E]{
		Created:  []E{},
		Rejected: []Rejection[I]{},
		Outcomes: make([]Outcome[I, E], 0, len(inputs)),
	}
	if len(inputs) == 0 {
		return result, nil
	}

	decisions, err := c.check(ctx, inputs)
	if err != nil {
		return CreationResult[I, E]{}, err
	}

	candidates := make([]E, 0, len(inputs))
	origins := make([]int, 0, len(inputs))
	for i, d := range decisions {
		if d.accepted {
			candidates = append(candidates, d.candidate)
			origins = append(origins, i)
		}
	}

	created := []E{}
	if len(candidates) > 0 {
		created, err = c.store.CreateMany(ctx, candidates)
		if err != nil {
			return CreationResult[I, E]{}, err
		}
		if len(created) != len(candidates) {
			return CreationResult[I, E]{}, goerrors.New(
				fmt.Sprintf("store created %d of %d %s records", len(created), len(candidates), c.kind.Name()),
				store.CategoryStore,
			)
		}
	}

	// created[j] originates from inputs[origins[j]]
	byInput := make(map[int]E, len(created))
	for j, record := range created {
		byInput[origins[j]] = record
	}

	for i, input := range inputs {
		if record, ok := byInput[i]; ok {
			result.Created = append(result.Created, record)
			result.Outcomes = append(result.Outcomes, Outcome[I, E]{Input: input, Entity: record, Created: true})
			continue
		}
		reason := decisions[i].reason
		result.Rejected = append(result.Rejected, Rejection[I]{Input: input, Reason: reason})
		result.Outcomes = append(result.Outcomes, Outcome[I, E]{Input: input, Reason: reason})
	}

	c.opts.Logger.Debug("batch create settled",
		"kind", c.kind.Name(),
		"inputs", len(inputs),
		"created", len(result.Created),
		"rejected", len(result.Rejected),
	)

	return result, nil
}

// check decides every input. Duplicates within the batch are resolved
// up front; only the first occurrence of a key is checked against the store.
func (c *Creator[I, E]) check(ctx context.Context, inputs []I) ([]decision[E], error) {
	decisions := make([]decision[E], len(inputs))
	now := c.opts.Now()

	seen := make(map[string]struct{}, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if c.opts.Concurrency > 0 {
		g.SetLimit(c.opts.Concurrency)
	}

	for i, input := range inputs {
		key := c.kind.UniqueKey(input)
		if _, dup := seen[key]; dup {
			decisions[i] = decision[E]{reason: ReasonDuplicateInBatch}
			continue
		}
		seen[key] = struct{}{}

		g.Go(func() error {
			_, found, err := c.store.FindByUniqueField(gctx, key)
			if err != nil {
				return err
			}
			if found {
				decisions[i] = decision[E]{reason: ReasonAlreadyExists}
				return nil
			}

			candidate, err := c.kind.Build(input, now)
			if err != nil {
				return fmt.Errorf("build %s %q: %w", c.kind.Name(), key, err)
			}
			decisions[i] = decision[E]{candidate: candidate, accepted: true}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return decisions, nil
}
