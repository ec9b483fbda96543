package agent

import (
	"context"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/DaiCC-Aurora/SigmaGo/searcher"
	"golang.org/x/exp/rand"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
	cfg  config
	src  rand.Source
}

// NewEvaluationAgent returns an agent for actual game play during
// evaluation. Moves are sampled from the plain search distribution and the
// tree is discarded after every move.
func NewEvaluationAgent(mcts *searcher.MCTS, options ...Option) Agent {
	cfg := newConfig(options)
	return &evaluationAgent{mcts: mcts, cfg: cfg, src: cfg.source()}
}

func (a *evaluationAgent) FindMove(ctx context.Context, board *game.Board) (game.Action, searcher.Distribution, error) {
	if len(board.AvailableMoves()) == 0 {
		return game.NoAction, searcher.Distribution{}, nil
	}
	dist, err := a.mcts.MoveProbabilities(ctx, board, a.cfg.temperature)
	// The opponent's reply is unknown, so nothing below the root is worth keeping
	defer a.mcts.Reset()
	if err != nil {
		return game.NoAction, searcher.Distribution{}, err
	}
	return sample(dist.Actions, dist.Probs, a.src), dist, nil
}

func (a *evaluationAgent) Observe(action game.Action) {}

func (a *evaluationAgent) Reset() {
	a.mcts.Reset()
}

func (a *evaluationAgent) LastMetric() searcher.SearchMetric {
	return a.mcts.LastMetric()
}
