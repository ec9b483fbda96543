package experiments

import (
	"fmt"
	"time"

	"github.com/DaiCC-Aurora/SigmaGo/evaluator"
	"github.com/DaiCC-Aurora/SigmaGo/searcher"
	"github.com/DaiCC-Aurora/SigmaGo/searcher/agent"
)

// Evaluator names accepted by AgentConfig.
const (
	UniformEvaluator = "uniform"
	RolloutEvaluator = "rollout"
)

type AgentConfig struct {
	ID         int
	Goroutines int
	Duration   time.Duration
	Playouts   int
	Evaluator  string // UniformEvaluator when empty
	Seed       uint64 // random when zero
}

func (c AgentConfig) newEvaluator(maxStones int) (searcher.Evaluator, error) {
	switch c.Evaluator {
	case "", UniformEvaluator:
		return evaluator.Uniform{}, nil
	case RolloutEvaluator:
		return evaluator.NewCached(evaluator.NewRollout(maxStones, int64(c.Seed)), 0), nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q", c.Evaluator)
	}
}

func (c AgentConfig) newAgent(maxStones int) (agent.Agent, error) {
	ev, err := c.newEvaluator(maxStones)
	if err != nil {
		return nil, err
	}

	options := []searcher.Option{searcher.WithMaxStones(maxStones), searcher.WithMetrics()}
	if c.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(c.Goroutines))
	}
	if c.Playouts > 0 {
		options = append(options, searcher.WithPlayouts(c.Playouts))
	}
	if c.Duration > 0 {
		options = append(options, searcher.WithDuration(c.Duration))
	}

	var agentOptions []agent.Option
	if c.Seed != 0 {
		agentOptions = append(agentOptions, agent.WithSeed(c.Seed))
	}
	return agent.NewEvaluationAgent(searcher.NewMCTS(ev, options...), agentOptions...), nil
}
