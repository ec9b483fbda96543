package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/DaiCC-Aurora/SigmaGo/searcher/agent"
	"github.com/rs/zerolog/log"
)

// Local plays one game between two in-process agents. Passing the same agent
// for both colors gives self-play.
type Local struct {
	board     *game.Board
	black     agent.Agent
	white     agent.Agent
	maxStones int
}

type Option func(e *Local)

func WithMaxStones(maxStones int) Option {
	return func(e *Local) {
		if maxStones > 0 {
			e.maxStones = maxStones
		}
	}
}

func NewLocal(board *game.Board, black, white agent.Agent, options ...Option) *Local {
	if black == nil || white == nil {
		panic("need an agent for each color")
	}
	e := &Local{
		board:     board,
		black:     black,
		white:     white,
		maxStones: game.DefaultMaxStones,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Board returns the live board of the game.
func (e *Local) Board() *game.Board {
	return e.board
}

func (e *Local) agentFor(c game.Color) agent.Agent {
	if c == game.Black {
		return e.black
	}
	return e.white
}

// Run executes the game loop. On error the result holds the moves played so
// far.
func (e *Local) Run(ctx context.Context) (Result, error) {
	var result Result
	start := time.Now()
	selfPlay := e.black == e.white
	log.Info().Int("size", e.board.Size()).Bool("selfPlay", selfPlay).Msg("game started")

	for step := 1; !e.board.IsTerminal(e.maxStones); step++ {
		mover := e.board.Turn()
		current := e.agentFor(mover)

		action, dist, err := current.FindMove(ctx, e.board)
		if err != nil {
			return result, fmt.Errorf("move %d by %s: %w", step, mover, err)
		}
		if action == game.NoAction {
			log.Info().Int("step", step).Str("color", mover.String()).Msg("no legal move left")
			break
		}
		if err := e.board.Place(mover, e.board.PositionOf(action)); err != nil {
			return result, fmt.Errorf("move %d by %s: %w", step, mover, err)
		}

		metric := MoveMetric{Step: step, Color: mover, Action: action, Prob: dist.Prob(action)}
		if reporter, ok := current.(metricReporter); ok {
			metric.SearchMetric = reporter.LastMetric()
		}
		result.Moves = append(result.Moves, action)
		result.MoveMetrics = append(result.MoveMetrics, metric)

		if !selfPlay {
			e.agentFor(mover.Opponent()).Observe(action)
		}
	}

	result.Winner = e.board.ScoreWinner()
	result.Score = e.board.Territory()
	end := time.Now()
	result.GameMetric = GameMetric{
		Winner:     result.Winner,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: len(result.Moves),
	}
	log.Info().
		Str("winner", result.Winner.String()).
		Int("moves", len(result.Moves)).
		Int("black", result.Score.Black).
		Int("white", result.Score.White).
		Dur("duration", result.GameMetric.Duration).
		Msg("game over")
	return result, nil
}
