package engine

import (
	"context"
	"time"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/DaiCC-Aurora/SigmaGo/searcher"
)

type Engine interface {
	// Run plays a game until the stone cap is passed or the mover has no move
	Run(ctx context.Context) (Result, error)
}

type Result struct {
	Winner      game.Color
	Score       game.Score
	Moves       []game.Action
	GameMetric  GameMetric
	MoveMetrics []MoveMetric
}

type MoveMetric struct {
	Step   int
	Color  game.Color
	Action game.Action
	Prob   float64 // search probability of the chosen move
	searcher.SearchMetric
}

type GameMetric struct {
	Winner     game.Color
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// metricReporter is implemented by agents backed by a local search.
type metricReporter interface {
	LastMetric() searcher.SearchMetric
}
