package searcher

import (
	"cmp"
	"math"
	"slices"

	"github.com/DaiCC-Aurora/SigmaGo/game"
)

// Distribution maps actions to probabilities. Actions are sorted ascending
// and Probs[i] belongs to Actions[i]. A distribution from MCTS lists only the
// visited root children, or every child with equal weight when none has been
// visited yet.
type Distribution struct {
	Actions []game.Action `json:"actions"`
	Probs   []float64     `json:"probs"`
}

func (d Distribution) Len() int {
	return len(d.Actions)
}

// Prob returns the probability of action, 0 if it is not enumerated.
func (d Distribution) Prob(action game.Action) float64 {
	i, found := slices.BinarySearch(d.Actions, action)
	if !found {
		return 0
	}
	return d.Probs[i]
}

// Dense returns a vector of length size*size indexed by action.
func (d Distribution) Dense(size int) []float64 {
	dense := make([]float64, size*size)
	for i, action := range d.Actions {
		dense[action] = d.Probs[i]
	}
	return dense
}

func (d Distribution) Map() map[game.Action]float64 {
	m := make(map[game.Action]float64, len(d.Actions))
	for i, action := range d.Actions {
		m[action] = d.Probs[i]
	}
	return m
}

// Best returns the most probable action, the smallest one on ties.
func (d Distribution) Best() game.Action {
	best := game.NoAction
	maxProb := math.Inf(-1)
	for i, p := range d.Probs {
		if p > maxProb {
			maxProb = p
			best = d.Actions[i]
		}
	}
	return best
}

// Softmax exponentiates x after subtracting its maximum and normalises.
func Softmax(x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}
	maxVal := slices.Max(x)
	out := make([]float64, len(x))
	sum := 0.0
	for i, v := range x {
		out[i] = math.Exp(v - maxVal)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

type actionVisits struct {
	action game.Action
	visits int
}

// visitDistribution is softmax(log(visits + eps) / temperature).
func visitDistribution(counts []actionVisits, temperature float64) Distribution {
	slices.SortFunc(counts, func(a, b actionVisits) int {
		return cmp.Compare(a.action, b.action)
	})
	actions := make([]game.Action, len(counts))
	logits := make([]float64, len(counts))
	for i, c := range counts {
		actions[i] = c.action
		logits[i] = math.Log(float64(c.visits)+VisitEpsilon) / temperature
	}
	return Distribution{Actions: actions, Probs: Softmax(logits)}
}
