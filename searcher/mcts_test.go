package searcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/stretchr/testify/require"
)

// uniform spreads priors evenly over every available move and returns a
// fixed value.
func uniform(value float64) Evaluator {
	return EvaluatorFunc(func(ctx context.Context, board *game.Board) (Evaluation, error) {
		legal := board.LegalActions()
		priors := make(map[game.Action]float64, len(legal))
		for _, a := range legal {
			priors[a] = 1 / float64(len(legal))
		}
		return Evaluation{Priors: priors, Value: value}, nil
	})
}

func TestNewMCTS(t *testing.T) {
	t.Run("panics without an evaluator", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS(nil) })
	})

	t.Run("defaults", func(t *testing.T) {
		m := NewMCTS(uniform(0))

		require.Equal(t, DefaultCPuct, m.cPuct)
		require.Equal(t, DefaultPlayouts, m.playouts)
		require.Equal(t, game.DefaultMaxStones, m.maxStones)
		require.Equal(t, DefaultGoroutines, m.goroutines)
		require.False(t, m.reuseSubtree)
	})

	t.Run("non-positive options are ignored", func(t *testing.T) {
		m := NewMCTS(uniform(0), WithPlayouts(0), WithCPuct(-1), WithGoroutines(0), WithMaxStones(-3))

		require.Equal(t, DefaultPlayouts, m.playouts)
		require.Equal(t, DefaultCPuct, m.cPuct)
		require.Equal(t, DefaultGoroutines, m.goroutines)
	})
}

func TestPlayout(t *testing.T) {
	t.Run("first playout expands the root", func(t *testing.T) {
		m := NewMCTS(uniform(0))
		board := game.NewBoardSize(3)

		require.NoError(t, m.Playout(context.Background(), board.Copy()))

		root := m.Root()
		require.Equal(t, 1, root.Visits)
		require.Equal(t, 9, root.Children)
		for _, c := range m.Children() {
			require.InDelta(t, 1.0/9, c.Prior, 1e-12)
			require.Zero(t, c.Visits)
		}
	})

	t.Run("values alternate sign along the path", func(t *testing.T) {
		m := NewMCTS(uniform(1))
		ctx := context.Background()
		board := game.NewBoardSize(3)

		require.NoError(t, m.Playout(ctx, board.Copy()))
		require.Equal(t, -1.0, m.Root().Value, "Root is credited to the player who did not move")

		require.NoError(t, m.Playout(ctx, board.Copy()))
		children := m.Children()
		require.Equal(t, game.Action(0), children[0].Action, "Ties should go to the smallest action")
		require.Equal(t, 1, children[0].Visits)
		require.Equal(t, -1.0, children[0].Value)
		require.Equal(t, 0.0, m.Root().Value)
	})

	t.Run("priors are masked to legal moves", func(t *testing.T) {
		ev := EvaluatorFunc(func(ctx context.Context, board *game.Board) (Evaluation, error) {
			return Evaluation{Priors: map[game.Action]float64{0: 0.5, 1: 0.25, 99: 0.25}}, nil
		})
		m := NewMCTS(ev)
		board := game.NewBoardSize(3)
		require.NoError(t, board.Play(0))

		require.NoError(t, m.Playout(context.Background(), board))

		children := m.Children()
		require.Len(t, children, 1)
		require.Equal(t, game.Action(1), children[0].Action)
		require.Equal(t, 0.25, children[0].Prior, "Masked priors are not renormalised")
	})

	t.Run("terminal leaf is scored without the evaluator", func(t *testing.T) {
		var calls atomic.Int32
		ev := EvaluatorFunc(func(ctx context.Context, board *game.Board) (Evaluation, error) {
			calls.Add(1)
			return Evaluation{}, nil
		})
		m := NewMCTS(ev, WithMaxStones(1))
		board := game.NewBoardSize(3)
		require.NoError(t, board.Play(0))
		require.NoError(t, board.Play(8))

		require.NoError(t, m.Playout(context.Background(), board))

		require.Zero(t, calls.Load())
		require.True(t, m.Root().Children == 0, "Terminal leaf should not be expanded")
		// Each side holds one stone, Black to move loses on komi
		require.Equal(t, 1.0, m.Root().Value)
	})

	t.Run("evaluator errors are returned", func(t *testing.T) {
		boom := errors.New("boom")
		ev := EvaluatorFunc(func(ctx context.Context, board *game.Board) (Evaluation, error) {
			return Evaluation{}, boom
		})
		m := NewMCTS(ev)

		err := m.Playout(context.Background(), game.NewBoardSize(3))

		require.ErrorIs(t, err, boom)
		require.Zero(t, m.Root().Visits)
	})

	t.Run("replaying an occupied point breaks the invariant", func(t *testing.T) {
		ev := EvaluatorFunc(func(ctx context.Context, board *game.Board) (Evaluation, error) {
			return Evaluation{Priors: map[game.Action]float64{0: 1}}, nil
		})
		m := NewMCTS(ev)
		require.NoError(t, m.Playout(context.Background(), game.NewBoardSize(3)))

		other := game.NewBoardSize(3)
		require.NoError(t, other.Play(0))
		err := m.Playout(context.Background(), other)

		require.ErrorIs(t, err, ErrInvariant)
		require.ErrorIs(t, err, game.ErrIllegalMove)
	})
}

func TestMoveProbabilities(t *testing.T) {
	ctx := context.Background()

	t.Run("distribution over visited root children", func(t *testing.T) {
		m := NewMCTS(uniform(0), WithPlayouts(50), WithMetrics())
		board := game.NewBoardSize(3)

		dist, err := m.MoveProbabilities(ctx, board, 1.0)

		require.NoError(t, err)
		require.Equal(t, 50, m.Root().Visits)
		visited := 0
		total := 0
		for _, c := range m.Children() {
			total += c.Visits
			if c.Visits > 0 {
				visited++
			}
		}
		require.Equal(t, 49, total, "Every playout but the first reaches a child")
		require.Equal(t, visited, dist.Len())

		sum := 0.0
		for i, p := range dist.Probs {
			sum += p
			if i > 0 {
				require.Less(t, dist.Actions[i-1], dist.Actions[i])
			}
		}
		require.InDelta(t, 1.0, sum, 1e-9)
		require.Equal(t, 0, board.StoneCount(), "Search should not mutate the board")

		metric := m.LastMetric()
		require.Equal(t, int64(50), metric.Playouts)
		require.Equal(t, 1, metric.Goroutines)
		require.Equal(t, m.TreeSize(), metric.TreeSize)
	})

	t.Run("unvisited children are enumerated uniformly", func(t *testing.T) {
		m := NewMCTS(uniform(0), WithPlayouts(1))

		dist, err := m.MoveProbabilities(ctx, game.NewBoardSize(3), 1e-3)

		require.NoError(t, err)
		require.Equal(t, 9, dist.Len())
		for _, p := range dist.Probs {
			require.InDelta(t, 1.0/9, p, 1e-9)
		}
	})

	t.Run("terminal root has an empty distribution", func(t *testing.T) {
		m := NewMCTS(uniform(0), WithPlayouts(5), WithMaxStones(1), WithMetrics())
		board := game.NewBoardSize(3)
		require.NoError(t, board.Play(0))
		require.NoError(t, board.Play(1))

		dist, err := m.MoveProbabilities(ctx, board, 1.0)

		require.NoError(t, err)
		require.Zero(t, dist.Len())
		require.Equal(t, game.NoAction, dist.Best())
		require.Equal(t, int64(5), m.LastMetric().TerminalPlayouts)
	})

	t.Run("rejects non-positive temperature", func(t *testing.T) {
		m := NewMCTS(uniform(0), WithPlayouts(1))

		_, err := m.MoveProbabilities(ctx, game.NewBoardSize(3), 0)

		require.Error(t, err)
	})

	t.Run("cancelled before any playout", func(t *testing.T) {
		m := NewMCTS(uniform(0), WithPlayouts(10))
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := m.MoveProbabilities(cancelled, game.NewBoardSize(3), 1.0)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("cancelled mid search returns partial result", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		defer cancel()
		var calls atomic.Int32
		inner := uniform(0)
		ev := EvaluatorFunc(func(ctx context.Context, board *game.Board) (Evaluation, error) {
			if calls.Add(1) == 3 {
				cancel()
			}
			return inner.Evaluate(ctx, board)
		})
		m := NewMCTS(ev, WithPlayouts(100))

		dist, err := m.MoveProbabilities(cancelled, game.NewBoardSize(3), 1.0)

		require.NoError(t, err)
		require.Equal(t, 3, m.Root().Visits)
		require.Positive(t, dist.Len())
	})

	t.Run("parallel playouts share the tree", func(t *testing.T) {
		m := NewMCTS(uniform(0), WithPlayouts(200), WithGoroutines(4), WithMetrics())

		dist, err := m.MoveProbabilities(ctx, game.NewBoardSize(5), 1.0)

		require.NoError(t, err)
		require.Equal(t, 200, m.Root().Visits)
		require.Positive(t, dist.Len())
		require.Equal(t, 4, m.LastMetric().Goroutines)
		require.Equal(t, int64(200), m.LastMetric().Playouts)
	})

	t.Run("parallel errors abort the search", func(t *testing.T) {
		boom := errors.New("boom")
		ev := EvaluatorFunc(func(ctx context.Context, board *game.Board) (Evaluation, error) {
			return Evaluation{}, boom
		})
		m := NewMCTS(ev, WithPlayouts(20), WithGoroutines(3))

		_, err := m.MoveProbabilities(ctx, game.NewBoardSize(3), 1.0)

		require.ErrorIs(t, err, boom)
	})
}

func TestUpdateWithMove(t *testing.T) {
	ctx := context.Background()
	search := func(t *testing.T, options ...Option) (*MCTS, game.Action) {
		m := NewMCTS(uniform(0), append([]Option{WithPlayouts(30)}, options...)...)
		dist, err := m.MoveProbabilities(ctx, game.NewBoardSize(3), 1.0)
		require.NoError(t, err)
		return m, dist.Best()
	}

	t.Run("rerooting keeps statistics and drops children", func(t *testing.T) {
		m, best := search(t)
		var visits int
		for _, c := range m.Children() {
			if c.Action == best {
				visits = c.Visits
			}
		}

		m.UpdateWithMove(best)

		root := m.Root()
		require.Equal(t, best, root.Action)
		require.Equal(t, visits, root.Visits)
		require.Zero(t, root.Children)
		require.Equal(t, 1, m.TreeSize())
	})

	t.Run("subtree reuse keeps grandchildren", func(t *testing.T) {
		m, best := search(t, WithSubtreeReuse(true), WithMetrics())
		var grandchildren int
		for _, c := range m.Children() {
			if c.Action == best {
				grandchildren = c.Children
			}
		}
		require.Positive(t, grandchildren)

		m.UpdateWithMove(best)

		require.Equal(t, grandchildren, m.Root().Children)

		board := game.NewBoardSize(3)
		require.NoError(t, board.Play(best))
		_, err := m.MoveProbabilities(ctx, board, 1.0)
		require.NoError(t, err)
		require.True(t, m.LastMetric().TreeReused)
	})

	t.Run("unknown move starts over", func(t *testing.T) {
		m, _ := search(t)

		m.UpdateWithMove(game.Action(1000))

		require.Equal(t, game.NoAction, m.Root().Action)
		require.Zero(t, m.Root().Visits)
		require.Equal(t, 1, m.TreeSize())
	})

	t.Run("reset starts over", func(t *testing.T) {
		m, _ := search(t)

		m.Reset()

		require.Zero(t, m.Root().Visits)
		require.Equal(t, 1, m.TreeSize())
	})
}
