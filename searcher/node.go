package searcher

import (
	"cmp"
	"math"
	"slices"

	"github.com/DaiCC-Aurora/SigmaGo/game"
)

// handle addresses a node in the tree's arena.
type handle int32

const noHandle handle = -1

type node struct {
	action   game.Action // move leading here from the parent
	parent   handle      // back-reference only, never used for lifetime
	children []handle    // sorted by action
	prior    float64
	visits   int
	value    float64 // mean of backed-up values
}

// puct scores a child: Q + c * P * sqrt(N) / (1 + n)
func puct(q, prior float64, sqrtParentVisits float64, visits int, cPuct float64) float64 {
	return q + cPuct*prior*sqrtParentVisits/float64(1+visits)
}

func (t *tree) isLeaf(h handle) bool {
	return len(t.nodes[h].children) == 0
}

func (t *tree) isRoot(h handle) bool {
	return t.nodes[h].parent == noHandle
}

// child looks up the child of h reached by action.
func (t *tree) child(h handle, action game.Action) (handle, bool) {
	children := t.nodes[h].children
	i, found := slices.BinarySearchFunc(children, action, func(c handle, a game.Action) int {
		return cmp.Compare(t.nodes[c].action, a)
	})
	if !found {
		return noHandle, false
	}
	return children[i], true
}

// expand adds a child for every action not yet present. Existing children
// keep their statistics.
func (t *tree) expand(h handle, priors map[game.Action]float64) {
	actions := make([]game.Action, 0, len(priors))
	for action := range priors {
		if _, ok := t.child(h, action); !ok {
			actions = append(actions, action)
		}
	}
	if len(actions) == 0 {
		return
	}
	slices.Sort(actions)

	added := make([]handle, 0, len(actions))
	for _, action := range actions {
		added = append(added, t.add(action, h, priors[action]))
	}
	children := append(t.nodes[h].children, added...)
	slices.SortFunc(children, func(a, b handle) int {
		return cmp.Compare(t.nodes[a].action, t.nodes[b].action)
	})
	t.nodes[h].children = children
}

// selectChild picks the child maximising PUCT. Children are scanned in
// action order and only a strictly better score replaces the incumbent, so
// ties go to the smallest action.
func (t *tree) selectChild(h handle, cPuct float64) (game.Action, handle) {
	n := &t.nodes[h]
	if len(n.children) == 0 {
		panic("cannot select from a leaf node")
	}

	sqrtN := math.Sqrt(float64(n.visits))
	best := noHandle
	bestScore := math.Inf(-1)
	for _, c := range n.children {
		child := &t.nodes[c]
		score := puct(child.value, child.prior, sqrtN, child.visits, cPuct)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return t.nodes[best].action, best
}

// update folds one value into the node's running mean.
func (t *tree) update(h handle, leafValue float64) {
	n := &t.nodes[h]
	n.visits++
	n.value += (leafValue - n.value) / float64(n.visits)
}

// backpropagate updates h and every ancestor up to the root, flipping the
// sign at each ply.
func (t *tree) backpropagate(h handle, leafValue float64) {
	for h != noHandle {
		t.update(h, leafValue)
		leafValue = -leafValue
		h = t.nodes[h].parent
	}
}
