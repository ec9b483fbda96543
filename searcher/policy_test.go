package searcher

import (
	"math"
	"testing"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/stretchr/testify/require"
)

func TestSoftmax(t *testing.T) {
	t.Run("normalising logits", func(t *testing.T) {
		got := Softmax([]float64{1, 2, 3})

		sum := 0.0
		for _, p := range got {
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-12, "Probabilities should sum to 1")
		require.InDelta(t, math.Exp(1)/(math.Exp(1)+math.Exp(2)+math.Exp(3)), got[0], 1e-12)
		require.Greater(t, got[2], got[1], "Larger logits should get larger probabilities")
	})

	t.Run("large logits do not overflow", func(t *testing.T) {
		got := Softmax([]float64{1e4, 1e4})

		require.InDelta(t, 0.5, got[0], 1e-12)
		require.InDelta(t, 0.5, got[1], 1e-12)
	})

	t.Run("empty input", func(t *testing.T) {
		require.Nil(t, Softmax(nil))
	})
}

func TestVisitDistribution(t *testing.T) {
	t.Run("unit temperature is proportional to visits", func(t *testing.T) {
		counts := []actionVisits{{action: 7, visits: 30}, {action: 2, visits: 10}}

		got := visitDistribution(counts, 1)

		require.Equal(t, []game.Action{2, 7}, got.Actions, "Actions should be sorted")
		require.InDelta(t, 0.25, got.Prob(2), 1e-9)
		require.InDelta(t, 0.75, got.Prob(7), 1e-9)
	})

	t.Run("low temperature concentrates on the most visited", func(t *testing.T) {
		counts := []actionVisits{{action: 0, visits: 9}, {action: 1, visits: 10}}

		got := visitDistribution(counts, 1e-3)

		require.InDelta(t, 1.0, got.Prob(1), 1e-9)
		require.InDelta(t, 0.0, got.Prob(0), 1e-9)
	})

	t.Run("unvisited children share uniformly", func(t *testing.T) {
		counts := []actionVisits{{action: 3}, {action: 4}, {action: 5}, {action: 6}}

		got := visitDistribution(counts, 1e-3)

		for _, p := range got.Probs {
			require.InDelta(t, 0.25, p, 1e-9)
		}
	})
}

func TestDistribution(t *testing.T) {
	d := Distribution{Actions: []game.Action{1, 4, 8}, Probs: []float64{0.4, 0.4, 0.2}}

	t.Run("missing actions have zero probability", func(t *testing.T) {
		require.Equal(t, 0.0, d.Prob(5))
		require.Equal(t, 0.2, d.Prob(8))
	})

	t.Run("ties go to the smallest action", func(t *testing.T) {
		require.Equal(t, game.Action(1), d.Best())
	})

	t.Run("empty distribution has no best action", func(t *testing.T) {
		require.Equal(t, game.NoAction, Distribution{}.Best())
	})

	t.Run("dense vector is indexed by action", func(t *testing.T) {
		dense := d.Dense(3)

		require.Len(t, dense, 9)
		require.Equal(t, []float64{0, 0.4, 0, 0, 0.4, 0, 0, 0, 0.2}, dense)
	})

	t.Run("map view", func(t *testing.T) {
		require.Equal(t, map[game.Action]float64{1: 0.4, 4: 0.4, 8: 0.2}, d.Map())
		require.Equal(t, 3, d.Len())
	})
}
