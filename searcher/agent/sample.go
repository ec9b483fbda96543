package agent

import (
	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/DaiCC-Aurora/SigmaGo/searcher"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// addNoise mixes probs with a symmetric Dirichlet draw,
// (1-epsilon)*p + epsilon*eta, and renormalises the mix with softmax.
func addNoise(probs []float64, epsilon, alpha float64, src rand.Source) []float64 {
	if len(probs) == 0 {
		return nil
	}
	noise := []float64{1}
	if len(probs) > 1 {
		concentration := make([]float64, len(probs))
		for i := range concentration {
			concentration[i] = alpha
		}
		noise = distmv.NewDirichlet(concentration, src).Rand(nil)
	}

	mixed := make([]float64, len(probs))
	for i, p := range probs {
		mixed[i] = (1-epsilon)*p + epsilon*noise[i]
	}
	return searcher.Softmax(mixed)
}

// sample draws an action with probability proportional to weights.
func sample(actions []game.Action, weights []float64, src rand.Source) game.Action {
	if len(actions) == 0 {
		return game.NoAction
	}
	i, ok := sampleuv.NewWeighted(weights, src).Take()
	if !ok {
		// All weights vanished; fall back to the first action
		return actions[0]
	}
	return actions[i]
}
