package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starford/arbor/internal/models"
	"github.com/starford/arbor/internal/tree"
)

func exercise() []models.Record {
	return []models.Record{
		{Name: "exercise"},
		{Name: "agility", Parent: "exercise"},
		{Name: "cardio", Parent: "exercise"},
		{Name: "box jumps", Parent: "agility"},
		{Name: "sprints", Parent: "agility"},
		{Name: "zone 2", Parent: "cardio"},
		{Name: "stretching"},
	}
}

func TestCountDescendants(t *testing.T) {
	children := tree.BuildChildrenMap(exercise())
	assert.Equal(t, 5, CountDescendants("exercise", children))
	assert.Equal(t, 2, CountDescendants("agility", children))
	assert.Equal(t, 0, CountDescendants("box jumps", children))
	assert.Equal(t, 0, CountDescendants("unknown", children))
}

func TestCountDescendants_DiamondCountedOnce(t *testing.T) {
	children := tree.ChildrenMap{
		"top":    {"left", "right"},
		"left":   {"shared"},
		"right":  {"shared"},
		"shared": {"leaf"},
	}
	// left, right, shared, leaf
	assert.Equal(t, 4, CountDescendants("top", children))
}

func TestCountDescendants_EqualsReachableSet(t *testing.T) {
	children := tree.ChildrenMap{
		"a": {"b", "c"},
		"b": {"d", "a"},
		"c": {"d"},
		"d": {"e", "b"},
	}
	for _, root := range []string{"a", "b", "c", "d", "e"} {
		reachable := tree.SubtreeNames(root, children)
		assert.Equal(t, len(reachable)-1, CountDescendants(root, children), "root %s", root)
	}
}

func TestCountDescendants_Cycle(t *testing.T) {
	children := tree.ChildrenMap{"A": {"B"}, "B": {"A"}}
	assert.Equal(t, 1, CountDescendants("A", children))
}

func TestTreeDepth(t *testing.T) {
	children := tree.BuildChildrenMap(exercise())
	assert.Equal(t, 2, TreeDepth("exercise", children))
	assert.Equal(t, 1, TreeDepth("cardio", children))
	assert.Equal(t, 0, TreeDepth("zone 2", children))
}

func TestTreeDepth_SiblingsDoNotSuppressEachOther(t *testing.T) {
	children := tree.ChildrenMap{
		"top":    {"left", "right"},
		"left":   {"shared"},
		"right":  {"x"},
		"x":      {"shared"},
		"shared": {"leaf"},
	}
	// top -> right -> x -> shared -> leaf
	assert.Equal(t, 4, TreeDepth("top", children))
}

func TestTreeDepth_CycleTerminates(t *testing.T) {
	children := tree.ChildrenMap{"A": {"B"}, "B": {"A"}}
	assert.Equal(t, 2, TreeDepth("A", children))
}

func TestAncestorCount(t *testing.T) {
	parents := tree.BuildParentsMap(exercise())
	assert.Equal(t, 2, AncestorCount("box jumps", parents))
	assert.Equal(t, 0, AncestorCount("exercise", parents))

	dangling := tree.ParentsMap{"lost": "ghost"}
	assert.Equal(t, 1, AncestorCount("lost", dangling))

	cyclic := tree.ParentsMap{"A": "B", "B": "A"}
	assert.Equal(t, 2, AncestorCount("A", cyclic))
}

func TestComputeStats(t *testing.T) {
	records := append(exercise(), models.Record{Name: "lost", Parent: "ghost"})
	stats := ComputeStats(records)

	assert.Equal(t, 8, stats.TotalNotes)
	// lost has a parents-map entry even though ghost is not a record.
	assert.Equal(t, []string{"exercise", "stretching"}, stats.Roots)
	assert.Equal(t, 2, stats.RootCount)
	// box jumps, sprints, zone 2, stretching, lost
	assert.Equal(t, 5, stats.LeafCount)
	assert.Equal(t, []string{"stretching"}, stats.Orphans)
	assert.Equal(t, 1, stats.OrphanCount)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Equal(t, 0, stats.TotalNotes)
	assert.Empty(t, stats.Roots)
	assert.NotNil(t, stats.Roots)
}
