package searcher

import "github.com/DaiCC-Aurora/SigmaGo/game"

// tree owns every node. Handles stay valid until the next reroot or reset,
// both of which rebuild the arena.
type tree struct {
	nodes []node
	root  handle
}

func newTree() *tree {
	t := &tree{}
	t.root = t.add(game.NoAction, noHandle, 1.0)
	return t
}

func (t *tree) add(action game.Action, parent handle, prior float64) handle {
	t.nodes = append(t.nodes, node{action: action, parent: parent, prior: prior})
	return handle(len(t.nodes) - 1)
}

func (t *tree) size() int {
	return len(t.nodes)
}

// reroot makes the root's child for action the new root. Unless keepSubtree
// is set the new root starts without children. Anything else in the arena is
// dropped. If action is not a child the tree is reset. Reports whether the
// tree was rerooted.
func (t *tree) reroot(action game.Action, keepSubtree bool) bool {
	if action == game.NoAction {
		t.reset()
		return false
	}
	c, ok := t.child(t.root, action)
	if !ok {
		t.reset()
		return false
	}

	fresh := &tree{}
	fresh.root = fresh.copyFrom(t, c, noHandle, keepSubtree)
	*t = *fresh
	return true
}

func (t *tree) copyFrom(src *tree, h handle, parent handle, deep bool) handle {
	n := src.nodes[h]
	nh := t.add(n.action, parent, n.prior)
	t.nodes[nh].visits = n.visits
	t.nodes[nh].value = n.value
	if !deep || len(n.children) == 0 {
		return nh
	}

	children := make([]handle, 0, len(n.children))
	for _, c := range n.children {
		children = append(children, t.copyFrom(src, c, nh, true))
	}
	t.nodes[nh].children = children
	return nh
}

func (t *tree) reset() {
	*t = *newTree()
}
