package searcher

import (
	"math"
	"testing"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/stretchr/testify/require"
)

func TestPuct(t *testing.T) {
	t.Run("computing PUCT value", func(t *testing.T) {
		got := puct(0.5, 0.2, math.Sqrt(16), 3, 5.0)

		require.InDelta(t, 0.5+5.0*0.2*4/4, got, 1e-12, "Should compute Q + c*P*sqrt(N)/(1+n)")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		require.Greater(t, puct(0, 0.5, 10, 1, 5), puct(0, 0.5, 10, 2, 5))
	})

	t.Run("exploration term increases with prior", func(t *testing.T) {
		require.Greater(t, puct(0, 0.6, 10, 1, 5), puct(0, 0.5, 10, 1, 5))
	})
}

func TestExpand(t *testing.T) {
	t.Run("children are sorted by action", func(t *testing.T) {
		tr := newTree()

		tr.expand(tr.root, map[game.Action]float64{9: 0.1, 2: 0.3, 5: 0.6})

		children := tr.nodes[tr.root].children
		require.Len(t, children, 3)
		for i, want := range []game.Action{2, 5, 9} {
			n := tr.nodes[children[i]]
			require.Equal(t, want, n.action)
			require.Equal(t, tr.root, n.parent)
			require.Zero(t, n.visits)
		}
		require.Equal(t, 0.6, tr.nodes[children[1]].prior)
	})

	t.Run("expanding twice keeps existing children", func(t *testing.T) {
		tr := newTree()
		tr.expand(tr.root, map[game.Action]float64{1: 0.5, 3: 0.5})
		c, _ := tr.child(tr.root, 3)
		tr.update(c, 1)

		tr.expand(tr.root, map[game.Action]float64{1: 0.2, 2: 0.4, 3: 0.4})

		require.Len(t, tr.nodes[tr.root].children, 3)
		again, ok := tr.child(tr.root, 3)
		require.True(t, ok)
		require.Equal(t, c, again, "Existing child should be reused")
		require.Equal(t, 1, tr.nodes[again].visits)
		require.Equal(t, 0.5, tr.nodes[again].prior, "Existing prior should not change")
		require.Equal(t, 4, tr.size())
	})

	t.Run("empty priors leave a leaf", func(t *testing.T) {
		tr := newTree()
		tr.expand(tr.root, nil)

		require.True(t, tr.isLeaf(tr.root))
		require.True(t, tr.isRoot(tr.root))
	})
}

func TestSelectChild(t *testing.T) {
	t.Run("selecting max PUCT child", func(t *testing.T) {
		tr := newTree()
		tr.expand(tr.root, map[game.Action]float64{0: 0.5, 1: 0.5})
		tr.nodes[tr.root].visits = 4
		low, _ := tr.child(tr.root, 0)
		high, _ := tr.child(tr.root, 1)
		tr.nodes[low].visits, tr.nodes[low].value = 2, -0.5
		tr.nodes[high].visits, tr.nodes[high].value = 2, 0.5

		action, got := tr.selectChild(tr.root, 5.0)

		require.Equal(t, game.Action(1), action)
		require.Equal(t, high, got)
	})

	t.Run("ties go to the smallest action", func(t *testing.T) {
		tr := newTree()
		tr.expand(tr.root, map[game.Action]float64{7: 0.25, 3: 0.25, 12: 0.25, 4: 0.25})

		action, _ := tr.selectChild(tr.root, 5.0)

		require.Equal(t, game.Action(3), action)
	})

	t.Run("prior decides among unvisited children", func(t *testing.T) {
		tr := newTree()
		tr.expand(tr.root, map[game.Action]float64{0: 0.1, 1: 0.7, 2: 0.2})
		tr.nodes[tr.root].visits = 1

		action, _ := tr.selectChild(tr.root, 5.0)

		require.Equal(t, game.Action(1), action)
	})

	t.Run("panics on a leaf", func(t *testing.T) {
		tr := newTree()
		require.Panics(t, func() {
			tr.selectChild(tr.root, 5.0)
		})
	})
}

func TestBackpropagate(t *testing.T) {
	t.Run("value flips sign at every ply", func(t *testing.T) {
		tr := newTree()
		tr.expand(tr.root, map[game.Action]float64{0: 1})
		child, _ := tr.child(tr.root, 0)
		tr.expand(child, map[game.Action]float64{1: 1})
		grandchild, _ := tr.child(child, 1)

		tr.backpropagate(grandchild, 1)

		require.Equal(t, 1.0, tr.nodes[grandchild].value)
		require.Equal(t, -1.0, tr.nodes[child].value)
		require.Equal(t, 1.0, tr.nodes[tr.root].value)
		for _, h := range []handle{tr.root, child, grandchild} {
			require.Equal(t, 1, tr.nodes[h].visits)
		}
	})

	t.Run("value is a running mean", func(t *testing.T) {
		tr := newTree()
		tr.backpropagate(tr.root, 1)
		tr.backpropagate(tr.root, 0)
		tr.backpropagate(tr.root, -0.4)

		require.Equal(t, 3, tr.nodes[tr.root].visits)
		require.InDelta(t, 0.2, tr.nodes[tr.root].value, 1e-12)
	})
}

func TestReroot(t *testing.T) {
	build := func() *tree {
		tr := newTree()
		tr.expand(tr.root, map[game.Action]float64{0: 0.5, 1: 0.5})
		c, _ := tr.child(tr.root, 1)
		tr.expand(c, map[game.Action]float64{2: 0.3, 3: 0.7})
		g, _ := tr.child(c, 3)
		tr.backpropagate(g, 0.5)
		return tr
	}

	t.Run("children are discarded by default", func(t *testing.T) {
		tr := build()

		require.True(t, tr.reroot(1, false))

		root := tr.nodes[tr.root]
		require.Equal(t, game.Action(1), root.action)
		require.Equal(t, noHandle, root.parent)
		require.Equal(t, 1, root.visits, "Statistics should survive")
		require.Equal(t, -0.5, root.value)
		require.True(t, tr.isLeaf(tr.root))
		require.Equal(t, 1, tr.size())
	})

	t.Run("subtree is kept on request", func(t *testing.T) {
		tr := build()

		require.True(t, tr.reroot(1, true))

		require.Equal(t, 3, tr.size())
		g, ok := tr.child(tr.root, 3)
		require.True(t, ok)
		require.Equal(t, tr.root, tr.nodes[g].parent)
		require.Equal(t, 0.5, tr.nodes[g].value)
		require.True(t, tr.isRoot(tr.root))
	})

	t.Run("unknown action resets", func(t *testing.T) {
		tr := build()

		require.False(t, tr.reroot(42, true))

		require.Equal(t, 1, tr.size())
		require.Equal(t, game.NoAction, tr.nodes[tr.root].action)
		require.Zero(t, tr.nodes[tr.root].visits)
	})

	t.Run("no action resets", func(t *testing.T) {
		tr := build()

		require.False(t, tr.reroot(game.NoAction, false))
		require.Equal(t, 1, tr.size())
	})
}
