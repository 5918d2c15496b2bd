// Package filter narrows a record collection by column values while keeping
// the parent chain of every match.
package filter

import (
	"slices"
	"strings"

	"github.com/starford/arbor/internal/models"
	"github.com/starford/arbor/internal/tree"
)

// Constraints maps a column name to its accepted values. A column with no
// accepted values is unconstrained.
type Constraints map[string][]string

// Active returns c without unconstrained columns.
func (c Constraints) Active() Constraints {
	out := make(Constraints, len(c))
	for col, values := range c {
		if len(values) > 0 {
			out[col] = values
		}
	}
	return out
}

// Parse reads constraints written as "col=value;col=value". Repeating a
// column accepts several values. Malformed pairs are skipped.
func Parse(s string) Constraints {
	c := make(Constraints)
	for _, pair := range strings.Split(s, ";") {
		col, value, ok := strings.Cut(pair, "=")
		col = strings.TrimSpace(col)
		value = strings.TrimSpace(value)
		if !ok || col == "" || value == "" {
			continue
		}
		if !slices.Contains(c[col], value) {
			c[col] = append(c[col], value)
		}
	}
	return c
}

// columns returns every column present in the collection.
func columns(records []models.Record) map[string]struct{} {
	cols := make(map[string]struct{}, len(models.PreferredColumns))
	if len(records) > 0 {
		for _, col := range models.PreferredColumns {
			cols[col] = struct{}{}
		}
	}
	for _, r := range records {
		for k := range r.Extra {
			cols[k] = struct{}{}
		}
	}
	return cols
}

// Records keeps the records whose value for every constrained column is
// accepted. Constraints on columns that no record carries are ignored; a
// record lacking a carried column is compared by the empty value.
func Records(records []models.Record, c Constraints) []models.Record {
	active := c.Active()
	cols := columns(records)
	for col := range active {
		if _, ok := cols[col]; !ok {
			delete(active, col)
		}
	}

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if matches(r, active) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.Record, c Constraints) bool {
	for col, accepted := range c {
		v, _ := r.Get(col)
		if !slices.Contains(accepted, v) {
			return false
		}
	}
	return true
}

// WithAncestors returns the records matched by Records plus every ancestor
// of a match that exists in records, found by walking the unfiltered parents
// map. The result keeps the order of records.
func WithAncestors(records []models.Record, c Constraints) []models.Record {
	if len(c.Active()) == 0 {
		return slices.Clone(records)
	}

	include := make(tree.NameSet)
	for _, r := range Records(records, c) {
		include[r.Name] = struct{}{}
	}

	parents := tree.BuildParentsMap(records)
	all := tree.Names(records)

	matched := make([]string, 0, len(include))
	for name := range include {
		matched = append(matched, name)
	}
	for _, name := range matched {
		for _, anc := range Ancestors(name, parents) {
			if all.Has(anc) {
				include[anc] = struct{}{}
			}
		}
	}

	out := make([]models.Record, 0, len(include))
	for _, r := range records {
		if include.Has(r.Name) {
			out = append(out, r)
		}
	}
	return out
}

// Ancestors walks parents upward from name and returns every parent visited,
// nearest first. The walk stops at a name without parent or at a name seen
// before.
func Ancestors(name string, parents tree.ParentsMap) []string {
	var out []string
	visited := make(tree.NameSet)
	current := name
	for {
		p, ok := parents[current]
		if !ok || visited.Has(current) {
			return out
		}
		visited[current] = struct{}{}
		out = append(out, p)
		current = p
	}
}
