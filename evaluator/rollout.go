package evaluator

import (
	"context"
	"math/rand"
	"sync"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/DaiCC-Aurora/SigmaGo/searcher"
	"github.com/bszcz/mt19937_64"
	"lukechampine.com/frand"
)

// Rollout values a position by playing uniformly random moves on a copy of
// the board until the stone cap is passed or no move is left, then scoring
// it. Priors are uniform over the available moves. Concurrent calls run
// their playouts in parallel, each on its own generator seeded from a shared
// one.
type Rollout struct {
	maxStones int
	mu        sync.Mutex // guards seeds
	seeds     *rand.Rand
	started   func() // called once a playout has its generator, tests only
}

// NewRollout returns a rollout evaluator. A zero seed picks a random one.
func NewRollout(maxStones int, seed int64) *Rollout {
	if maxStones <= 0 {
		maxStones = game.DefaultMaxStones
	}
	if seed == 0 {
		seed = int64(frand.Uint64n(1 << 62))
	}
	return &Rollout{maxStones: maxStones, seeds: newMT(seed)}
}

func newMT(seed int64) *rand.Rand {
	src := mt19937_64.New()
	src.Seed(seed)
	return rand.New(src)
}

func (r *Rollout) Evaluate(ctx context.Context, board *game.Board) (searcher.Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return searcher.Evaluation{}, err
	}
	legal := board.LegalActions()
	return searcher.Evaluation{
		Priors: uniformPriors(legal),
		Value:  r.rollout(board),
	}, nil
}

// rollout returns +1 if the color to move on board wins the random game,
// -1 if it loses and 0 on a draw.
func (r *Rollout) rollout(board *game.Board) float64 {
	mover := board.Turn()
	b := board.Copy()

	r.mu.Lock()
	rng := newMT(r.seeds.Int63())
	r.mu.Unlock()
	if r.started != nil {
		r.started()
	}

	for !b.IsTerminal(r.maxStones) {
		legal := b.LegalActions()
		if len(legal) == 0 {
			break
		}
		// Every empty point is playable, so this cannot fail
		_ = b.Play(legal[rng.Intn(len(legal))])
	}

	switch b.ScoreWinner() {
	case game.Draw:
		return 0
	case mover:
		return 1
	default:
		return -1
	}
}
