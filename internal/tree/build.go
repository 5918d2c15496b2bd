package tree

import "github.com/starford/arbor/internal/models"

// BuildTree builds the descendant tree rooted at root. Only children present
// in valid are included, in ChildrenMap order.
//
// Each recursive call receives its own copy of the visited set, so a name is
// cut short only when it recurs on its own ancestor chain; a node shared by
// two branches is expanded under both. A cut node, or any node reached once
// maxDepth is exhausted, is returned as a leaf.
func BuildTree(root string, children ChildrenMap, valid NameSet, maxDepth int) *models.Node {
	return buildDown(root, children, valid, nil, maxDepth)
}

func buildDown(name string, children ChildrenMap, valid NameSet, visited NameSet, depth int) *models.Node {
	node := &models.Node{Name: name}
	if visited.Has(name) || depth <= 0 {
		return node
	}
	path := visited.clone()
	path[name] = struct{}{}

	for _, child := range children[name] {
		if !valid.Has(child) {
			continue
		}
		node.Children = append(node.Children, buildDown(child, children, valid, path, depth-1))
	}
	return node
}

// BuildInvertedTree builds the ancestor chain of leaf as a tree: every node
// has at most one child, its parent, included only when the parent is in
// valid. Cycle and depth guards match BuildTree.
func BuildInvertedTree(leaf string, parents ParentsMap, valid NameSet, maxDepth int) *models.Node {
	return buildUp(leaf, parents, valid, nil, maxDepth)
}

func buildUp(name string, parents ParentsMap, valid NameSet, visited NameSet, depth int) *models.Node {
	node := &models.Node{Name: name}
	if visited.Has(name) || depth <= 0 {
		return node
	}
	path := visited.clone()
	path[name] = struct{}{}

	if p, ok := parents[name]; ok && valid.Has(p) {
		node.Children = []*models.Node{buildUp(p, parents, valid, path, depth-1)}
	}
	return node
}

// SubtreeNames returns root and every name reachable from it through
// children. A single visited set is shared across the walk.
func SubtreeNames(root string, children ChildrenMap) NameSet {
	seen := make(NameSet)
	var walk func(string)
	walk = func(name string) {
		if seen.Has(name) {
			return
		}
		seen[name] = struct{}{}
		for _, c := range children[name] {
			walk(c)
		}
	}
	walk(root)
	return seen
}
