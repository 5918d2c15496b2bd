// Package tree derives parent/child structure from a flat record collection
// and builds nested display trees from it.
package tree

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/starford/arbor/internal/models"
)

// DefaultMaxDepth bounds display tree recursion.
const DefaultMaxDepth = 20

// ChildrenMap maps a parent name to its child names, sorted case-insensitively.
type ChildrenMap map[string][]string

// ParentsMap maps a child name to its declared parent name.
type ParentsMap map[string]string

// NameSet is a set of record names.
type NameSet map[string]struct{}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// clone returns a copy of s with room for one more entry.
func (s NameSet) clone() NameSet {
	out := make(NameSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// SortFold sorts names in place by their lower-cased form. Equal keys keep
// their relative order.
func SortFold(names []string) {
	lower := cases.Lower(language.Und)
	keys := make(map[string]string, len(names))
	for _, n := range names {
		if _, ok := keys[n]; !ok {
			keys[n] = lower.String(n)
		}
	}
	slices.SortStableFunc(names, func(a, b string) int {
		return strings.Compare(keys[a], keys[b])
	})
}

// SortRecords sorts records in place by name, case-insensitively.
func SortRecords(records []models.Record) {
	lower := cases.Lower(language.Und)
	keys := make([]string, len(records))
	for i := range records {
		keys[i] = lower.String(records[i].Name)
	}
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return strings.Compare(keys[a], keys[b])
	})
	sorted := make([]models.Record, len(records))
	for i, j := range order {
		sorted[i] = records[j]
	}
	copy(records, sorted)
}

func parentOf(r models.Record) string {
	return strings.TrimSpace(r.Parent)
}

// BuildChildrenMap groups record names by their parent. Records without a
// parent are not part of any group.
func BuildChildrenMap(records []models.Record) ChildrenMap {
	children := make(ChildrenMap)
	for _, r := range records {
		p := parentOf(r)
		if p == "" {
			continue
		}
		children[p] = append(children[p], r.Name)
	}
	for _, names := range children {
		SortFold(names)
	}
	return children
}

// BuildParentsMap maps every record with a non-empty parent to that parent.
// The parent is not required to exist in records.
func BuildParentsMap(records []models.Record) ParentsMap {
	parents := make(ParentsMap)
	for _, r := range records {
		if p := parentOf(r); p != "" {
			parents[r.Name] = p
		}
	}
	return parents
}

// Names returns the set of record names.
func Names(records []models.Record) NameSet {
	names := make(NameSet, len(records))
	for _, r := range records {
		names[r.Name] = struct{}{}
	}
	return names
}

// SortedNames returns every record name sorted case-insensitively.
func SortedNames(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	SortFold(out)
	return out
}

// FindRoots returns the records whose parent is empty or names no record in
// the collection, sorted case-insensitively.
func FindRoots(records []models.Record) []string {
	names := Names(records)
	var roots []string
	for _, r := range records {
		p := parentOf(r)
		if p == "" || !names.Has(p) {
			roots = append(roots, r.Name)
		}
	}
	SortFold(roots)
	return roots
}
