package experiments

import (
	"context"
	"fmt"

	"chessbot/agent"
	"chessbot/config"
	"chessbot/engine"
	"chessbot/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// Run plays every match up of the experiment and stores agent configs, game
// and move records and one PGN per game. Agents swap colours each game.
// It returns the directory the results were written to.
func Run(ctx context.Context, experiment config.Experiment) (string, error) {
	agentConfigs := map[int]config.Agent{}
	for _, a := range experiment.Agents {
		agentConfigs[a.ID] = a
	}

	writer, err := metrics.NewWriter(experiment.OutputDir, experiment.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	err = writer.WriteAgentConfigs(experiment.Agents)
	if err != nil {
		return "", err
	}
	log.Info().Msg("stored agent configs")

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", experiment.Name)

	for mi, matchUp := range experiment.MatchUps {
		config1, ok1 := agentConfigs[matchUp[0]]
		config2, ok2 := agentConfigs[matchUp[1]]
		if !ok1 || !ok2 {
			return "", fmt.Errorf("%w: match up %v refers to an unknown agent", config.ErrInvalidConfig, matchUp)
		}

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(experiment.MatchUps), config1, config2)

		for i := 0; i < experiment.Games; i++ {
			white, black := config1, config2
			if i%2 == 1 {
				white, black = config2, config1
			}

			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(experiment.MatchUps), i+1, experiment.Games)

			count++
			winner, gameMetric, moveMetrics, pgn, err := runGame(ctx, white, black, experiment)
			if err != nil {
				return "", fmt.Errorf("game %d: %w", count, err)
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				White:      white.ID,
				Black:      black.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			err = writer.WritePGN(count, pgn)
			if err != nil {
				return "", err
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(experiment.MatchUps), i+1, describe(winner))
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(experiment.MatchUps))
	}

	log.Info().Msgf("completed %s experiment", experiment.Name)

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(ctx context.Context, white, black config.Agent, experiment config.Experiment) (string, metrics.GameMetric, []metrics.MoveMetric, string, error) {
	whiteAgent, err := agent.New(white)
	if err != nil {
		return "", metrics.GameMetric{}, nil, "", err
	}
	blackAgent, err := agent.New(black)
	if err != nil {
		return "", metrics.GameMetric{}, nil, "", err
	}

	e, err := engine.NewLocalEngine(whiteAgent, blackAgent, experiment.StartFEN, experiment.MaxPlies)
	if err != nil {
		return "", metrics.GameMetric{}, nil, "", err
	}
	e.WithNames(agentName(white), agentName(black))

	winner, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return "", metrics.GameMetric{}, nil, "", err
	}
	return winner, gameMetric, moveMetrics, e.PGN(), nil
}

func agentName(a config.Agent) string {
	return fmt.Sprintf("%s#%d", a.Strategy, a.ID)
}

func describe(winner string) string {
	if winner == "" {
		return "none"
	}
	return winner
}
