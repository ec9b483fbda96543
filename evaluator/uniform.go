// Package evaluator provides searcher.Evaluator implementations: fixed
// uniform priors, random rollouts, a memoising wrapper and an HTTP client
// and handler pair for evaluators running in another process.
package evaluator

import (
	"context"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/DaiCC-Aurora/SigmaGo/searcher"
)

// Uniform spreads the prior evenly over the available moves and always
// values the position at 0.
type Uniform struct{}

func (Uniform) Evaluate(ctx context.Context, board *game.Board) (searcher.Evaluation, error) {
	return searcher.Evaluation{Priors: uniformPriors(board.LegalActions())}, nil
}

func uniformPriors(legal []game.Action) map[game.Action]float64 {
	priors := make(map[game.Action]float64, len(legal))
	for _, a := range legal {
		priors[a] = 1 / float64(len(legal))
	}
	return priors
}
