package config

import (
	"errors"
	"fmt"
	"os"

	"chessbot/game"
	"chessbot/meta"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Strategy string

const (
	Random  Strategy = "random"
	Negamax Strategy = "negamax"
	MCTS    Strategy = "mcts"
)

// Agent configures one move-selection strategy. Zero values fall back to the
// defaults in meta.
type Agent struct {
	ID               int      `yaml:"id"`
	Strategy         Strategy `yaml:"strategy"`
	IterationsNew    int      `yaml:"iterations_new,omitempty"`
	IterationsReused int      `yaml:"iterations_reused,omitempty"`
	Exploration      *float64 `yaml:"exploration,omitempty"` // UCB1 constant, nil for sqrt(2)
	Depth            int      `yaml:"depth,omitempty"`
	Seed             uint64   `yaml:"seed,omitempty"` // 0 seeds from the clock
}

type Experiment struct {
	Name      string   `yaml:"name"`
	Games     int      `yaml:"games"`
	MaxPlies  int      `yaml:"max_plies"`
	StartFEN  string   `yaml:"start_fen"`
	OutputDir string   `yaml:"output_dir"`
	Agents    []Agent  `yaml:"agents"`
	MatchUps  [][2]int `yaml:"match_ups"` // Pairs of agent IDs
}

type Config struct {
	Agent      Agent      `yaml:"agent"`
	Experiment Experiment `yaml:"experiment"`
}

func Default() *Config {
	cfg := &Config{
		Agent: Agent{Strategy: MCTS},
		Experiment: Experiment{
			Name:      "mcts_vs_negamax",
			Games:     meta.GAMES,
			MaxPlies:  meta.MAX_PLIES,
			StartFEN:  game.StartFEN,
			OutputDir: "experiments",
			Agents: []Agent{
				{ID: 1, Strategy: MCTS},
				{ID: 2, Strategy: Negamax},
			},
			MatchUps: [][2]int{{1, 2}},
		},
	}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML config over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Experiment.Agents = nil
	cfg.Experiment.MatchUps = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(cfg.Experiment.Agents) == 0 {
		cfg.Experiment.Agents = Default().Experiment.Agents
		cfg.Experiment.MatchUps = Default().Experiment.MatchUps
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Agent.applyDefaults()
	for i := range c.Experiment.Agents {
		c.Experiment.Agents[i].applyDefaults()
	}
}

func (a *Agent) applyDefaults() {
	if a.Strategy == "" {
		a.Strategy = MCTS
	}
	if a.IterationsNew == 0 {
		a.IterationsNew = meta.ITERATIONS_NEW
	}
	if a.IterationsReused == 0 {
		a.IterationsReused = meta.ITERATIONS_REUSED
	}
	if a.Depth == 0 {
		a.Depth = meta.NEGAMAX_DEPTH
	}
}

func (c *Config) Validate() error {
	if err := c.Agent.Validate(); err != nil {
		return err
	}

	e := c.Experiment
	if e.Games < 1 {
		return fmt.Errorf("%w: experiment needs at least one game per match up", ErrInvalidConfig)
	}
	if e.MaxPlies < 1 {
		return fmt.Errorf("%w: max plies must be positive", ErrInvalidConfig)
	}
	if _, err := game.ParseFEN(e.StartFEN); err != nil {
		return fmt.Errorf("%w: start position: %v", ErrInvalidConfig, err)
	}

	ids := map[int]bool{}
	for _, a := range e.Agents {
		if ids[a.ID] {
			return fmt.Errorf("%w: duplicate agent id %d", ErrInvalidConfig, a.ID)
		}
		ids[a.ID] = true
		if err := a.Validate(); err != nil {
			return err
		}
	}
	for _, m := range e.MatchUps {
		if !ids[m[0]] || !ids[m[1]] {
			return fmt.Errorf("%w: match up %v refers to an unknown agent", ErrInvalidConfig, m)
		}
	}
	return nil
}

func (a Agent) Validate() error {
	switch a.Strategy {
	case Random, Negamax, MCTS:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, a.Strategy)
	}
	if a.IterationsNew < 1 || a.IterationsReused < 1 {
		return fmt.Errorf("%w: iteration budgets must be positive", ErrInvalidConfig)
	}
	if a.Exploration != nil && *a.Exploration < 0 {
		return fmt.Errorf("%w: exploration must not be negative", ErrInvalidConfig)
	}
	if a.Depth < 1 {
		return fmt.Errorf("%w: negamax depth must be positive", ErrInvalidConfig)
	}
	return nil
}
