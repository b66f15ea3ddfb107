package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/thomasdelmas/Ecommerce-sub000/bulk"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
	"github.com/thomasdelmas/Ecommerce-sub000/pkg/di"
	"github.com/thomasdelmas/Ecommerce-sub000/service"
	"github.com/urfave/cli/v3"
)

type creationOutput[I any, E any] struct {
	Status   string              `json:"status"`
	Created  []E                 `json:"created"`
	Rejected []bulk.Rejection[I] `json:"rejected"`
}

type deletionOutput struct {
	Status string `json:"status"`
	bulk.DeletionResult
}

type pageOutput[E any] struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Items   []E `json:"items"`
}

// ImportProducts creates the products listed in the file argument.
func (r *Runner) ImportProducts(ctx context.Context, cmd *cli.Command) error {
	return r.withContainer(ctx, cmd, func(c *di.Container) error {
		return importBatch(ctx, r, cmd, c.Products())
	})
}

// ImportUsers creates the users listed in the file argument.
func (r *Runner) ImportUsers(ctx context.Context, cmd *cli.Command) error {
	return r.withContainer(ctx, cmd, func(c *di.Container) error {
		return importBatch(ctx, r, cmd, c.Users())
	})
}

func (r *Runner) DeleteProducts(ctx context.Context, cmd *cli.Command) error {
	return r.withContainer(ctx, cmd, func(c *di.Container) error {
		return deleteBatch(ctx, r, cmd, c.Products())
	})
}

func (r *Runner) DeleteUsers(ctx context.Context, cmd *cli.Command) error {
	return r.withContainer(ctx, cmd, func(c *di.Container) error {
		return deleteBatch(ctx, r, cmd, c.Users())
	})
}

// SearchProducts prints one page of products matching the price, category
// and text flags.
func (r *Runner) SearchProducts(ctx context.Context, cmd *cli.Command) error {
	spec := entity.FilterSpec{}

	if cmd.IsSet("min-price") || cmd.IsSet("max-price") {
		var price entity.Range
		if cmd.IsSet("min-price") {
			price.Min = entity.Bound(cmd.Float("min-price"))
		}
		if cmd.IsSet("max-price") {
			price.Max = entity.Bound(cmd.Float("max-price"))
		}
		spec.Ranges = map[string]entity.Range{"price": price}
	}
	if categories := cmd.StringSlice("category"); len(categories) > 0 {
		spec.In = map[string][]string{"category": categories}
	}
	spec.Text = textMatch(cmd, cmd.String("text-field"))

	return r.withContainer(ctx, cmd, func(c *di.Container) error {
		return search(ctx, r, cmd, c.Products(), spec)
	})
}

// SearchUsers prints one page of users matching the role and text flags.
func (r *Runner) SearchUsers(ctx context.Context, cmd *cli.Command) error {
	spec := entity.FilterSpec{}
	if roles := cmd.StringSlice("role"); len(roles) > 0 {
		spec.In = map[string][]string{"role": roles}
	}
	spec.Text = textMatch(cmd, "username")

	return r.withContainer(ctx, cmd, func(c *di.Container) error {
		return search(ctx, r, cmd, c.Users(), spec)
	})
}

func textMatch(cmd *cli.Command, field string) *entity.TextMatch {
	term := cmd.String("text")
	if term == "" {
		return nil
	}
	return &entity.TextMatch{
		Field:         field,
		Term:          term,
		CaseSensitive: cmd.Bool("case-sensitive"),
	}
}

func importBatch[I any, E any](ctx context.Context, r *Runner, cmd *cli.Command, svc *service.Service[I, E]) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("input file is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var inputs []I
	if err := json.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	result, err := svc.CreateBatch(ctx, inputs)
	if err != nil {
		return err
	}

	status := result.Status()
	if err := r.writeJSON(creationOutput[I, E]{
		Status:   status.String(),
		Created:  result.Created,
		Rejected: result.Rejected,
	}, cmd.Bool("pretty")); err != nil {
		return err
	}

	if status == bulk.StatusFailed {
		return fmt.Errorf("no %s created, %d rejected", strings.ToLower(svc.Kind()), len(result.Rejected))
	}
	return nil
}

func deleteBatch[I any, E any](ctx context.Context, r *Runner, cmd *cli.Command, svc *service.Service[I, E]) error {
	result, err := svc.DeleteBatch(ctx, cmd.StringArgs("ids"))
	if err != nil {
		return err
	}

	status := result.Status()
	if err := r.writeJSON(deletionOutput{Status: status.String(), DeletionResult: result}, cmd.Bool("pretty")); err != nil {
		return err
	}

	if status == bulk.StatusFailed {
		return fmt.Errorf("no %s deleted", strings.ToLower(svc.Kind()))
	}
	return nil
}

func search[I any, E any](ctx context.Context, r *Runner, cmd *cli.Command, svc *service.Service[I, E], spec entity.FilterSpec) error {
	page, perPage := cmd.Int("page"), cmd.Int("per-page")

	items, err := svc.ReadFiltered(ctx, spec, page, perPage)
	if err != nil {
		return err
	}

	return r.writeJSON(pageOutput[E]{Page: page, PerPage: perPage, Items: items}, cmd.Bool("pretty"))
}
