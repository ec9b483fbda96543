package searcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrInvariant reports a tree action that could not be replayed on the board
// it was expanded for.
var ErrInvariant = errors.New("search tree invariant violated")

type Option func(m *MCTS)

// MCTS is a PUCT tree search over game.Board. The tree is shared by every
// playout; each playout works on its own copy of the board. Methods must not
// be called concurrently with each other, MoveProbabilities runs its own
// workers when configured with more than one goroutine.
type MCTS struct {
	mu           sync.Mutex
	evaluator    Evaluator
	cPuct        float64
	playouts     int
	maxStones    int
	goroutines   int
	duration     time.Duration
	reuseSubtree bool
	tree         *tree
	treeReused   bool
	metrics      Collector
	last         SearchMetric
}

func WithCPuct(cPuct float64) Option {
	return func(m *MCTS) {
		if cPuct > 0 {
			m.cPuct = cPuct
		}
	}
}

func WithPlayouts(playouts int) Option {
	return func(m *MCTS) {
		if playouts > 0 {
			m.playouts = playouts
		}
	}
}

func WithMaxStones(maxStones int) Option {
	return func(m *MCTS) {
		if maxStones > 0 {
			m.maxStones = maxStones
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithDuration bounds each search by wall-clock time, checked between
// playouts.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithSubtreeReuse keeps the chosen child's subtree when rerooting instead
// of starting the new root without children.
func WithSubtreeReuse(reuse bool) Option {
	return func(m *MCTS) {
		m.reuseSubtree = reuse
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewCollector()
	}
}

func NewMCTS(evaluator Evaluator, options ...Option) *MCTS {
	if evaluator == nil {
		panic("MCTS requires an evaluator")
	}
	m := &MCTS{ // Default values
		evaluator:  evaluator,
		cPuct:      DefaultCPuct,
		playouts:   DefaultPlayouts,
		maxStones:  game.DefaultMaxStones,
		goroutines: DefaultGoroutines,
		tree:       newTree(),
		metrics:    NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Playout runs one select, evaluate, expand and backpropagate cycle. The
// board is consumed: it is played forward along the selected path.
func (m *MCTS) Playout(ctx context.Context, board *game.Board) error {
	m.mu.Lock()
	leaf, err := m.descend(board)
	m.mu.Unlock()
	if err != nil {
		return err
	}

	value, priors, terminal, err := m.evaluateLeaf(ctx, board)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if terminal {
		m.metrics.AddTerminalPlayout()
	} else {
		m.tree.expand(leaf, priors)
	}
	// The leaf is scored by the player who moved into it
	m.tree.backpropagate(leaf, -value)
	m.metrics.AddPlayout()
	return nil
}

func (m *MCTS) descend(board *game.Board) (handle, error) {
	h := m.tree.root
	for !m.tree.isLeaf(h) {
		action, child := m.tree.selectChild(h, m.cPuct)
		if err := board.Play(action); err != nil {
			return noHandle, fmt.Errorf("%w: replaying action %d: %w", ErrInvariant, action, err)
		}
		h = child
	}
	return h, nil
}

// evaluateLeaf returns the leaf value from the perspective of the color to
// move on board, plus priors restricted to legal actions.
func (m *MCTS) evaluateLeaf(ctx context.Context, board *game.Board) (float64, map[game.Action]float64, bool, error) {
	legal := board.LegalActions()
	if board.IsTerminal(m.maxStones) || len(legal) == 0 {
		return terminalValue(board), nil, true, nil
	}

	evaluation, err := m.evaluator.Evaluate(ctx, board)
	if err != nil {
		return 0, nil, false, fmt.Errorf("evaluating leaf: %w", err)
	}
	return evaluation.Value, maskPriors(evaluation.Priors, legal), false, nil
}

func terminalValue(board *game.Board) float64 {
	switch board.ScoreWinner() {
	case game.Draw:
		return 0
	case board.Turn():
		return 1
	default:
		return -1
	}
}

func maskPriors(priors map[game.Action]float64, legal []game.Action) map[game.Action]float64 {
	masked := make(map[game.Action]float64, len(legal))
	for _, action := range legal {
		if p, ok := priors[action]; ok {
			masked[action] = p
		}
	}
	if dropped := len(priors) - len(masked); dropped > 0 {
		log.Debug().Int("dropped", dropped).Msg("masked priors for illegal actions")
	}
	return masked
}

// MoveProbabilities runs the configured number of playouts from the current
// root against copies of board, then turns the root's child visit counts
// into softmax(log(N) / temperature). Children that were never visited are
// only enumerated when no child was.
//
// Cancellation and the duration budget are honoured between playouts. If at
// least one playout completed, the partial distribution is returned without
// error.
func (m *MCTS) MoveProbabilities(ctx context.Context, board *game.Board, temperature float64) (Distribution, error) {
	if temperature <= 0 {
		return Distribution{}, fmt.Errorf("temperature must be positive, got %v", temperature)
	}
	if m.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.duration)
		defer cancel()
	}

	m.metrics.Start(m.goroutines, m.treeReused)
	var completed atomic.Int64
	var err error
	if m.goroutines > 1 {
		err = m.parallel(ctx, board, &completed)
	} else {
		err = m.sequential(ctx, board, &completed)
	}
	m.last = m.metrics.Complete()
	m.last.TreeSize = m.TreeSize()

	if err != nil {
		if !isCancellation(err) || completed.Load() == 0 {
			return Distribution{}, err
		}
		log.Warn().Err(err).
			Int64("completed", completed.Load()).
			Int("budget", m.playouts).
			Msg("search stopped before its playout budget")
	}
	return m.distribution(temperature), nil
}

func (m *MCTS) sequential(ctx context.Context, board *game.Board, completed *atomic.Int64) error {
	for i := 0; i < m.playouts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Playout(ctx, board.Copy()); err != nil {
			return err
		}
		completed.Add(1)
	}
	return nil
}

func (m *MCTS) parallel(ctx context.Context, board *game.Board, completed *atomic.Int64) error {
	tasks := make(chan struct{}, m.playouts)
	for i := 0; i < m.playouts; i++ {
		tasks <- struct{}{}
	}
	close(tasks)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < m.goroutines; i++ {
		g.Go(func() error {
			for range tasks {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := m.Playout(gctx, board.Copy()); err != nil {
					return err
				}
				completed.Add(1)
			}
			return nil
		})
	}
	return g.Wait()
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (m *MCTS) distribution(temperature float64) Distribution {
	m.mu.Lock()
	defer m.mu.Unlock()

	children := m.tree.nodes[m.tree.root].children
	counts := make([]actionVisits, 0, len(children))
	for _, c := range children {
		if n := m.tree.nodes[c]; n.visits > 0 {
			counts = append(counts, actionVisits{action: n.action, visits: n.visits})
		}
	}
	if len(counts) == 0 {
		for _, c := range children {
			counts = append(counts, actionVisits{action: m.tree.nodes[c].action})
		}
	}
	return visitDistribution(counts, temperature)
}

// UpdateWithMove reroots the tree on action if it is a child of the root,
// otherwise (including game.NoAction) starts over from a fresh root.
func (m *MCTS) UpdateWithMove(action game.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.treeReused = m.tree.reroot(action, m.reuseSubtree)
	if m.treeReused {
		log.Debug().Int("action", int(action)).Int("nodes", m.tree.size()).Msg("rerooted search tree")
	}
}

// Reset discards the tree, as for a new game.
func (m *MCTS) Reset() {
	m.UpdateWithMove(game.NoAction)
}

// LastMetric returns the metrics of the most recent MoveProbabilities call.
func (m *MCTS) LastMetric() SearchMetric {
	return m.last
}

// NodeStats is a read-only view of a tree node.
type NodeStats struct {
	Action   game.Action
	Prior    float64
	Visits   int
	Value    float64
	Children int
}

func (t *tree) stats(h handle) NodeStats {
	n := t.nodes[h]
	return NodeStats{
		Action:   n.action,
		Prior:    n.prior,
		Visits:   n.visits,
		Value:    n.value,
		Children: len(n.children),
	}
}

func (m *MCTS) Root() NodeStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.stats(m.tree.root)
}

// Children returns the root's children in action order.
func (m *MCTS) Children() []NodeStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	children := m.tree.nodes[m.tree.root].children
	stats := make([]NodeStats, len(children))
	for i, c := range children {
		stats[i] = m.tree.stats(c)
	}
	return stats
}

// TreeSize is the number of nodes currently held.
func (m *MCTS) TreeSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.size()
}
