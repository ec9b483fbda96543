package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/DaiCC-Aurora/SigmaGo/engine"
	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

var parallelConfigs = []AgentConfig{
	{ID: 1, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Goroutines: 4, Duration: TimeBudget},
	{ID: 3, Goroutines: 8, Duration: TimeBudget},
	{ID: 4, Goroutines: 16, Duration: TimeBudget},
}

// Experiment plays NumGames games for every match up. The first agent of a
// match up plays Black.
type Experiment struct {
	Name      string
	Configs   []AgentConfig
	MatchUps  [][2]AgentConfig
	NumGames  int
	BoardSize int
	MaxStones int
}

type Records struct {
	Games []GameRecord
	Moves []MoveRecord
}

// ParallelizationToThroughput pairs every parallel config with itself, for
// the same playing strength and similar game length.
func ParallelizationToThroughput() Experiment {
	matchUps := [][2]AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, [2]AgentConfig{config, config})
	}
	return Experiment{
		Name:      "parallelization_to_throughput",
		Configs:   parallelConfigs,
		MatchUps:  matchUps,
		NumGames:  NumGames,
		BoardSize: game.Size,
		MaxStones: game.DefaultMaxStones,
	}
}

// ParallelizationToStrength pairs every parallel config against a
// sequential baseline using rollouts.
func ParallelizationToStrength() Experiment {
	baseline := AgentConfig{ID: 0, Goroutines: 1, Duration: TimeBudget, Evaluator: RolloutEvaluator}
	configs := []AgentConfig{baseline}
	matchUps := [][2]AgentConfig{}
	for _, config := range parallelConfigs {
		config.Evaluator = RolloutEvaluator
		configs = append(configs, config)
		matchUps = append(matchUps, [2]AgentConfig{baseline, config})
	}
	return Experiment{
		Name:      "parallelization_to_strength",
		Configs:   configs,
		MatchUps:  matchUps,
		NumGames:  NumGames,
		BoardSize: game.Size,
		MaxStones: game.DefaultMaxStones,
	}
}

func (x Experiment) Run(ctx context.Context) (Records, error) {
	var records Records
	count := 0
	log.Info().Msgf("starting %s experiment...", x.Name)

	for mi, matchUp := range x.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(x.MatchUps), matchUp[0], matchUp[1])

		for i := 0; i < x.NumGames; i++ {
			result, err := x.runGame(ctx, matchUp[0], matchUp[1])
			if err != nil {
				return records, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			records.Games = append(records.Games, GameRecord{
				ID:         count,
				Agent1:     matchUp[0].ID,
				Agent2:     matchUp[1].ID,
				Score:      result.Score,
				GameMetric: result.GameMetric,
			})
			for _, mm := range result.MoveMetrics {
				records.Moves = append(records.Moves, MoveRecord{Game: count, MoveMetric: mm})
			}
			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(x.MatchUps), i+1, result.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", x.Name)
	return records, nil
}

func (x Experiment) runGame(ctx context.Context, black, white AgentConfig) (engine.Result, error) {
	blackAgent, err := black.newAgent(x.MaxStones)
	if err != nil {
		return engine.Result{}, err
	}
	whiteAgent, err := white.newAgent(x.MaxStones)
	if err != nil {
		return engine.Result{}, err
	}
	e := engine.NewLocal(game.NewBoardSize(x.BoardSize), blackAgent, whiteAgent, engine.WithMaxStones(x.MaxStones))
	return e.Run(ctx)
}

// Store writes the configs and records of a finished experiment under dir.
func (x Experiment) Store(dir string, records Records) (string, error) {
	writer, err := NewWriter(dir, x.Name)
	if err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(x.Configs); err != nil {
		return "", err
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(records.Games); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(records.Moves); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")
	return writer.baseDir, nil
}
