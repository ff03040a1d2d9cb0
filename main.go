package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"chessbot/agent"
	"chessbot/config"
	"chessbot/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	fen := flag.String("fen", "", "Position to choose a move for")
	strategy := flag.String("strategy", "", "Move selection strategy: mcts, negamax or random")
	seed := flag.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	configPath := flag.String("config", "", "Path to a YAML config")
	experiment := flag.Bool("experiment", false, "Run the configured experiment")
	verbose := flag.Bool("v", false, "Log search progress")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *fen, *strategy, *seed, *configPath, *experiment); err != nil {
		log.Error().Err(err).Msg("chessbot failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, fen, strategy string, seed uint64, configPath string, experiment bool) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if experiment {
		dir, err := experiments.Run(ctx, cfg.Experiment)
		if err != nil {
			return err
		}
		log.Info().Msgf("results stored in %s", dir)
		return nil
	}

	if fen == "" {
		return errors.New("missing -fen")
	}
	if strategy != "" {
		cfg.Agent.Strategy = config.Strategy(strategy)
	}
	if seed != 0 {
		cfg.Agent.Seed = seed
	}

	a, err := agent.New(cfg.Agent)
	if err != nil {
		return err
	}
	move, err := a.ChooseMove(ctx, fen)
	if err != nil {
		return err
	}
	if move == "" {
		move = "(none)"
	}
	fmt.Println(move)
	return nil
}
