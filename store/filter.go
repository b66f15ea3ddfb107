package store

import (
	"sort"
	"strings"

	"github.com/thomasdelmas/Ecommerce-sub000/entity"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterCriteria translates a FilterSpec into select criteria. Field names are
// expected to be validated against the kind's FieldSet beforehand. Constraints
// are applied in sorted field order so the generated SQL is stable.
func filterCriteria(spec entity.FilterSpec, name dialect.Name) func(*bun.SelectQuery) *bun.SelectQuery {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, field := range sortedKeys(spec.Ranges) {
			r := spec.Ranges[field]
			if r.Min != nil {
				q = q.Where("? >= ?", bun.Ident(field), *r.Min)
			}
			if r.Max != nil {
				q = q.Where("? <= ?", bun.Ident(field), *r.Max)
			}
		}

		for _, field := range sortedKeys(spec.In) {
			q = q.Where("? IN (?)", bun.Ident(field), bun.In(spec.In[field]))
		}

		if text := spec.Text; text != nil {
			q = textCriteria(q, *text, name)
		}

		return q
	}
}

func textCriteria(q *bun.SelectQuery, text entity.TextMatch, name dialect.Name) *bun.SelectQuery {
	column := bun.Ident(text.Field)

	if !text.CaseSensitive {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(text.Term)) + "%"
		return q.Where(`LOWER(?) LIKE ? ESCAPE '\'`, column, pattern)
	}

	// LIKE is case insensitive on sqlite, use a position lookup instead.
	if name == dialect.PG {
		return q.Where("strpos(?, ?) > 0", column, text.Term)
	}
	return q.Where("instr(?, ?) > 0", column, text.Term)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
