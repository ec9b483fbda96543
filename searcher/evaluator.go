package searcher

import (
	"context"

	"github.com/DaiCC-Aurora/SigmaGo/game"
)

// Evaluation is what an evaluator says about a position. Priors should cover
// every available move and sum to roughly 1. Value lies in [-1, 1] and is
// seen from the color to move on the evaluated board.
type Evaluation struct {
	Priors map[game.Action]float64 `json:"priors"`
	Value  float64                 `json:"value"`
}

// Evaluator turns a board into move priors and a value. Implementations
// must not keep or mutate the board they are given.
type Evaluator interface {
	Evaluate(ctx context.Context, board *game.Board) (Evaluation, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, board *game.Board) (Evaluation, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, board *game.Board) (Evaluation, error) {
	return f(ctx, board)
}
