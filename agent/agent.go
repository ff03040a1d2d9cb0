package agent

import (
	"context"
	"time"

	"chessbot/config"
	"chessbot/experiments/metrics"
	"chessbot/searcher"

	"golang.org/x/exp/rand"
)

type Agent interface {
	// ChooseMove returns a UCI move for the position, or an empty string when
	// the side to move has no legal move
	ChooseMove(ctx context.Context, fen string) (string, error)
}

// Reporter is implemented by agents that collect search metrics.
type Reporter interface {
	Metric() metrics.SearchMetric
}

// Resetter is implemented by agents that keep state between moves of a game.
type Resetter interface {
	Reset()
}

// New returns an agent for the configured strategy.
func New(cfg config.Agent) (Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Strategy {
	case config.Random:
		return NewRandomAgent(newRand(cfg.Seed)), nil
	case config.Negamax:
		return NewNegamaxAgent(cfg.Depth), nil
	default:
		return createMCTS(cfg), nil
	}
}

func createMCTS(cfg config.Agent) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithIterations(cfg.IterationsNew, cfg.IterationsReused),
		searcher.WithRand(newRand(cfg.Seed)),
		searcher.WithMetrics(),
	}
	if cfg.Exploration != nil {
		options = append(options, searcher.WithExploration(*cfg.Exploration))
	}
	return searcher.NewMCTS(options...)
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}
