// Package analysis computes counts and statistics over the parent/child maps.
package analysis

import (
	"github.com/starford/arbor/internal/models"
	"github.com/starford/arbor/internal/tree"
)

// Stats summarises the shape of a record collection.
type Stats struct {
	TotalNotes  int      `json:"total_notes"`
	RootCount   int      `json:"root_count"`
	LeafCount   int      `json:"leaf_count"`
	OrphanCount int      `json:"orphan_count"`
	Roots       []string `json:"roots"`
	Orphans     []string `json:"orphans"`
}

// CountDescendants returns the number of distinct names reachable below
// name, excluding name. One visited set is shared by the whole walk, so a
// node reachable along several paths is counted once.
func CountDescendants(name string, children tree.ChildrenMap) int {
	return len(tree.SubtreeNames(name, children)) - 1
}

// TreeDepth returns the longest edge count from name down to a leaf. Each
// child branch gets its own copy of the visited set.
func TreeDepth(name string, children tree.ChildrenMap) int {
	return depth(name, children, make(tree.NameSet))
}

func depth(name string, children tree.ChildrenMap, visited tree.NameSet) int {
	if visited.Has(name) {
		return 0
	}
	visited[name] = struct{}{}
	kids := children[name]
	if len(kids) == 0 {
		return 0
	}
	deepest := 0
	for _, c := range kids {
		branch := make(tree.NameSet, len(visited))
		for k := range visited {
			branch[k] = struct{}{}
		}
		if d := depth(c, children, branch); d > deepest {
			deepest = d
		}
	}
	return 1 + deepest
}

// AncestorCount returns the number of parent steps from name until a name
// without parent is reached or a name recurs.
func AncestorCount(name string, parents tree.ParentsMap) int {
	count := 0
	visited := make(tree.NameSet)
	current := name
	for {
		p, ok := parents[current]
		if !ok || visited.Has(current) {
			return count
		}
		visited[current] = struct{}{}
		current = p
		count++
	}
}

// ComputeStats reports root, leaf and orphan counts. A root has no entry in
// the parents map, a leaf is never anyone's parent, an orphan is both.
func ComputeStats(records []models.Record) Stats {
	children := tree.BuildChildrenMap(records)
	parents := tree.BuildParentsMap(records)
	names := tree.SortedNames(records)

	seen := make(tree.NameSet, len(names))
	roots := []string{}
	orphans := []string{}
	leaves := 0
	for _, n := range names {
		if seen.Has(n) {
			continue
		}
		seen[n] = struct{}{}

		_, hasParent := parents[n]
		_, hasChildren := children[n]
		if !hasParent {
			roots = append(roots, n)
		}
		if !hasChildren {
			leaves++
		}
		if !hasParent && !hasChildren {
			orphans = append(orphans, n)
		}
	}

	return Stats{
		TotalNotes:  len(seen),
		RootCount:   len(roots),
		LeafCount:   leaves,
		OrphanCount: len(orphans),
		Roots:       roots,
		Orphans:     orphans,
	}
}
