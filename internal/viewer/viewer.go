// Package viewer resolves what the tree viewer shows: filter choices, the
// display tree for a root and orientation, parent navigation and node
// details.
package viewer

import (
	"strings"

	"github.com/starford/arbor/internal/analysis"
	"github.com/starford/arbor/internal/filter"
	"github.com/starford/arbor/internal/models"
	"github.com/starford/arbor/internal/table"
	"github.com/starford/arbor/internal/tree"
)

// Direction selects the tree orientation.
type Direction string

// Orientations.
const (
	Descendants Direction = "descendants"
	Ancestors   Direction = "ancestors"
)

// ParseDirection maps a query value to a Direction, defaulting to
// Descendants.
func ParseDirection(s string) Direction {
	if Direction(strings.ToLower(strings.TrimSpace(s))) == Ancestors {
		return Ancestors
	}
	return Descendants
}

// unfilterable columns never get a filter control.
var unfilterable = map[string]bool{
	models.ColumnName:     true,
	models.ColumnFilePath: true,
	models.ColumnParent:   true,
}

// FilterOptions returns, for each filterable column, its distinct non-empty
// values sorted case-insensitively. Columns without values are omitted.
func FilterOptions(records []models.Record) map[string][]string {
	out := make(map[string][]string)
	for _, col := range table.Columns(records) {
		if unfilterable[col] {
			continue
		}
		seen := make(map[string]struct{})
		var values []string
		for _, r := range records {
			v, _ := r.Get(col)
			if strings.TrimSpace(v) == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
		if len(values) == 0 {
			continue
		}
		tree.SortFold(values)
		out[col] = values
	}
	return out
}

// ApplyFilters narrows records to the constraint matches plus their
// ancestors, so the remaining forest stays connected.
func ApplyFilters(records []models.Record, c filter.Constraints) []models.Record {
	return filter.WithAncestors(records, c)
}

// Display is a resolved view of a record collection.
type Display struct {
	// Root is the name the tree is built from; empty when there is no data.
	Root string
	// Tree is nil when there is no data.
	Tree *models.Node
	// Nodes lists every selectable name, sorted case-insensitively.
	Nodes []string
}

// TreeForDisplay builds the tree for root in the given direction. A root
// that names no record falls back to the first root (descendants) or the
// first name (ancestors, or when there are no roots).
func TreeForDisplay(records []models.Record, root string, dir Direction, maxDepth int) Display {
	if maxDepth <= 0 {
		maxDepth = tree.DefaultMaxDepth
	}
	names := tree.Names(records)
	d := Display{Nodes: tree.SortedNames(records)}
	if len(d.Nodes) == 0 {
		return d
	}

	if !names.Has(root) {
		root = d.Nodes[0]
		if dir != Ancestors {
			if roots := tree.FindRoots(records); len(roots) > 0 {
				root = roots[0]
			}
		}
	}
	d.Root = root

	if dir == Ancestors {
		d.Tree = tree.BuildInvertedTree(root, tree.BuildParentsMap(records), names, maxDepth)
	} else {
		d.Tree = tree.BuildTree(root, tree.BuildChildrenMap(records), names, maxDepth)
	}
	return d
}

func find(records []models.Record, name string) (models.Record, bool) {
	for _, r := range records {
		if r.Name == name {
			return r, true
		}
	}
	return models.Record{}, false
}

// ParentOf returns the trimmed parent of name. ok is false when name is
// unknown or has no parent. The parent may name no record.
func ParentOf(records []models.Record, name string) (string, bool) {
	r, found := find(records, name)
	if !found {
		return "", false
	}
	p := strings.TrimSpace(r.Parent)
	return p, p != ""
}

// Details describes one record and its position in the forest.
type Details struct {
	Name        string            `json:"name"`
	Fields      map[string]string `json:"fields"`
	Parent      string            `json:"parent,omitempty"`
	Children    []string          `json:"children"`
	Descendants int               `json:"descendants"`
	Depth       int               `json:"depth"`
	Ancestors   int               `json:"ancestors"`
}

// NodeDetails returns the non-empty fields and tree metrics of name.
func NodeDetails(records []models.Record, name string) (Details, bool) {
	r, found := find(records, name)
	if !found {
		return Details{}, false
	}
	children := tree.BuildChildrenMap(records)
	parents := tree.BuildParentsMap(records)

	kids := children[name]
	if kids == nil {
		kids = []string{}
	}
	return Details{
		Name:        r.Name,
		Fields:      r.Fields(),
		Parent:      parents[name],
		Children:    kids,
		Descendants: analysis.CountDescendants(name, children),
		Depth:       analysis.TreeDepth(name, children),
		Ancestors:   analysis.AncestorCount(name, parents),
	}, true
}
