package agent

import (
	"context"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/DaiCC-Aurora/SigmaGo/searcher"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Agent interface {
	// FindMove searches board and returns the chosen move together with the
	// root distribution it was drawn from. game.NoAction means the mover has
	// no move left.
	FindMove(ctx context.Context, board *game.Board) (game.Action, searcher.Distribution, error)
	// Observe is told about moves played by the other side.
	Observe(action game.Action)
	// Reset prepares the agent for a new game.
	Reset()
}

const (
	DefaultTemperature         = 1e-3
	DefaultSelfPlayTemperature = 1.0  // Sample in proportion to visits
	DefaultEpsilon             = 0.25 // Weight of the Dirichlet noise
	DefaultAlpha               = 0.3  // Dirichlet concentration
)

type config struct {
	temperature float64
	epsilon     float64
	alpha       float64
	seed        uint64
}

type Option func(c *config)

func WithTemperature(temperature float64) Option {
	return func(c *config) {
		if temperature > 0 {
			c.temperature = temperature
		}
	}
}

// WithNoise sets the Dirichlet mixing weight and concentration used during
// self-play.
func WithNoise(epsilon, alpha float64) Option {
	return func(c *config) {
		if epsilon >= 0 && epsilon <= 1 {
			c.epsilon = epsilon
		}
		if alpha > 0 {
			c.alpha = alpha
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

func newConfig(options []Option) config {
	c := config{ // Default values
		temperature: DefaultTemperature,
		epsilon:     DefaultEpsilon,
		alpha:       DefaultAlpha,
		seed:        frand.Uint64n(1 << 63),
	}
	for _, option := range options {
		option(&c)
	}
	return c
}

func (c config) source() rand.Source {
	return rand.NewSource(c.seed)
}
