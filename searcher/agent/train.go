package agent

import (
	"context"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/DaiCC-Aurora/SigmaGo/searcher"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type selfPlayAgent struct {
	mcts *searcher.MCTS
	cfg  config
	src  rand.Source
}

// NewSelfPlayAgent returns an agent for self-play during training. Moves are
// sampled from the search distribution blended with Dirichlet noise, and the
// tree is kept across moves. The temperature defaults to
// DefaultSelfPlayTemperature.
func NewSelfPlayAgent(mcts *searcher.MCTS, options ...Option) Agent {
	cfg := newConfig(append([]Option{WithTemperature(DefaultSelfPlayTemperature)}, options...))
	return &selfPlayAgent{mcts: mcts, cfg: cfg, src: cfg.source()}
}

func (a *selfPlayAgent) FindMove(ctx context.Context, board *game.Board) (game.Action, searcher.Distribution, error) {
	if len(board.AvailableMoves()) == 0 {
		return game.NoAction, searcher.Distribution{}, nil
	}
	dist, err := a.mcts.MoveProbabilities(ctx, board, a.cfg.temperature)
	if err != nil {
		return game.NoAction, searcher.Distribution{}, err
	}
	if dist.Len() == 0 {
		return game.NoAction, dist, nil
	}

	probs := addNoise(dist.Probs, a.cfg.epsilon, a.cfg.alpha, a.src)
	action := sample(dist.Actions, probs, a.src)
	a.mcts.UpdateWithMove(action)
	log.Debug().
		Str("color", board.Turn().String()).
		Int("action", int(action)).
		Float64("prob", dist.Prob(action)).
		Msg("self-play move")
	return action, dist, nil
}

func (a *selfPlayAgent) Observe(action game.Action) {
	a.mcts.UpdateWithMove(action)
}

func (a *selfPlayAgent) Reset() {
	a.mcts.Reset()
}

func (a *selfPlayAgent) LastMetric() searcher.SearchMetric {
	return a.mcts.LastMetric()
}
