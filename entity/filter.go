package entity

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FilterSpec describes the constraints of a filtered read. It is a value:
// the cached reader hashes its canonical form to build cache keys.
type FilterSpec struct {
	// Ranges maps a numeric field to an inclusive [Min, Max] constraint.
	Ranges map[string]Range `json:"ranges,omitempty"`
	// In maps a field to the set of values it may take.
	In map[string][]string `json:"in,omitempty"`
	// Text is an optional substring match on one field.
	Text *TextMatch `json:"text,omitempty"`
}

// Range is an inclusive numeric bound. A nil side is unbounded.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

type TextMatch struct {
	Field         string `json:"field"`
	Term          string `json:"term"`
	CaseSensitive bool   `json:"case_sensitive"`
}

// FieldSet lists the fields each constraint type may reference.
type FieldSet struct {
	Ranges []string
	Sets   []string
	Text   []string
}

// Bound returns a pointer to v, handy when building ranges.
func Bound(v float64) *float64 {
	return &v
}

// IsEmpty reports whether the spec carries no constraint at all.
func (f FilterSpec) IsEmpty() bool {
	return len(f.Ranges) == 0 && len(f.In) == 0 && f.Text == nil
}

// Canonical returns a copy where set members are sorted and deduplicated.
// Map keys need no treatment here, the key serializer sorts them.
func (f FilterSpec) Canonical() FilterSpec {
	out := FilterSpec{Text: f.Text}

	if len(f.Ranges) > 0 {
		out.Ranges = make(map[string]Range, len(f.Ranges))
		for field, r := range f.Ranges {
			out.Ranges[field] = r
		}
	}

	if len(f.In) > 0 {
		out.In = make(map[string][]string, len(f.In))
		for field, values := range f.In {
			set := append([]string(nil), values...)
			sort.Strings(set)
			out.In[field] = slices.Compact(set)
		}
	}

	if f.Text != nil {
		text := *f.Text
		out.Text = &text
	}

	return out
}

// Validate checks the spec against the fields allowed for an entity kind.
func (f FilterSpec) Validate(fields FieldSet) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Ranges, validation.By(func(any) error {
			return validateRanges(f.Ranges, fields.Ranges)
		})),
		validation.Field(&f.In, validation.By(func(any) error {
			return validateSets(f.In, fields.Sets)
		})),
		validation.Field(&f.Text, validation.By(func(any) error {
			return validateText(f.Text, fields.Text)
		})),
	)
}

func validateRanges(ranges map[string]Range, allowed []string) error {
	for field, r := range ranges {
		if !slices.Contains(allowed, field) {
			return fmt.Errorf("field %q does not support ranges", field)
		}
		if r.Min == nil && r.Max == nil {
			return fmt.Errorf("range on %q needs min or max", field)
		}
		if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
			return fmt.Errorf("range on %q has min greater than max", field)
		}
	}
	return nil
}

func validateSets(sets map[string][]string, allowed []string) error {
	for field, values := range sets {
		if !slices.Contains(allowed, field) {
			return fmt.Errorf("field %q does not support set membership", field)
		}
		if len(values) == 0 {
			return fmt.Errorf("set on %q is empty", field)
		}
	}
	return nil
}

func validateText(text *TextMatch, allowed []string) error {
	if text == nil {
		return nil
	}
	if !slices.Contains(allowed, text.Field) {
		return fmt.Errorf("field %q does not support text search", text.Field)
	}
	if text.Term == "" {
		return errors.New("text term is empty")
	}
	return nil
}
