package engine

import (
	"context"
	"fmt"
	"time"

	"chessbot/agent"
	"chessbot/experiments/metrics"
	"chessbot/game"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

// LocalEngine plays two agents against each other in process. Game results
// are adjudicated independently of the agents' own rules.
type LocalEngine struct {
	white    agent.Agent
	black    agent.Agent
	names    [2]string
	startFEN string
	maxPlies int
	pgn      string
}

func NewLocalEngine(white, black agent.Agent, startFEN string, maxPlies int) (*LocalEngine, error) {
	if white == nil || black == nil {
		return nil, fmt.Errorf("need two agents")
	}
	if maxPlies < 1 {
		return nil, fmt.Errorf("max plies must be positive, got %d", maxPlies)
	}
	if startFEN == "" {
		startFEN = game.StartFEN
	}
	if _, err := chess.FEN(startFEN); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidPosition, err)
	}

	return &LocalEngine{
		white:    white,
		black:    black,
		names:    [2]string{"white", "black"},
		startFEN: startFEN,
		maxPlies: maxPlies,
	}, nil
}

// WithNames sets the player names recorded in the PGN.
func (e *LocalEngine) WithNames(white, black string) *LocalEngine {
	e.names = [2]string{white, black}
	return e
}

// PGN returns the record of the last game.
func (e *LocalEngine) PGN() string {
	return e.pgn
}

// Run executes the entire game loop until the game is over.
func (e *LocalEngine) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	for _, a := range []agent.Agent{e.white, e.black} {
		if r, ok := a.(agent.Resetter); ok {
			r.Reset()
		}
	}

	fen, err := chess.FEN(e.startFEN)
	if err != nil {
		return "", metrics.GameMetric{}, nil, fmt.Errorf("%w: %v", game.ErrInvalidPosition, err)
	}
	g := chess.NewGame(fen, chess.UseNotation(chess.UCINotation{}))
	g.AddTagPair("White", e.names[0])
	g.AddTagPair("Black", e.names[1])
	if e.startFEN != game.StartFEN {
		g.AddTagPair("SetUp", "1")
		g.AddTagPair("FEN", e.startFEN)
	}

	gameMetric := metrics.GameMetric{
		StartingPlayer: colorName(g.Position().Turn()),
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	log.Debug().Msgf("%s is starting", gameMetric.StartingPlayer)

	ply := 0
	for g.Outcome() == chess.NoOutcome && ply < e.maxPlies {
		if err := ctx.Err(); err != nil {
			return "", gameMetric, moveMetrics, err
		}

		turn := g.Position().Turn()
		player := e.white
		if turn == chess.Black {
			player = e.black
		}

		move, err := player.ChooseMove(ctx, g.Position().String())
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("%s failed to choose a move at ply %d: %w", colorName(turn), ply+1, err)
		}
		if move == "" {
			return "", gameMetric, moveMetrics, fmt.Errorf("%s found no move in an unfinished game at ply %d", colorName(turn), ply+1)
		}
		if err := g.MoveStr(move); err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("%s played illegal move %s at ply %d: %w", colorName(turn), move, ply+1, err)
		}
		ply++

		moveMetric := metrics.MoveMetric{Step: ply, Player: colorName(turn), Move: move}
		if r, ok := player.(agent.Reporter); ok {
			moveMetric.SearchMetric = r.Metric()
		}
		moveMetrics = append(moveMetrics, moveMetric)

		claimDraw(g)
	}

	gameMetric.Winner = winner(g.Outcome())
	gameMetric.Termination = termination(g)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = ply
	e.pgn = g.String()

	log.Debug().Msgf("game over after %d plies: %s (%s)", ply, g.Outcome(), gameMetric.Termination)

	return gameMetric.Winner, gameMetric, moveMetrics, nil
}

// claimDraw applies a threefold repetition or fifty-move draw as soon as it
// can be claimed.
func claimDraw(g *chess.Game) {
	for _, method := range g.EligibleDraws() {
		if method == chess.ThreefoldRepetition || method == chess.FiftyMoveRule {
			if err := g.Draw(method); err != nil {
				log.Warn().Err(err).Msg("failed to claim draw")
			}
			return
		}
	}
}

func termination(g *chess.Game) string {
	if g.Outcome() == chess.NoOutcome {
		return "max plies"
	}
	return g.Method().String()
}

func winner(outcome chess.Outcome) string {
	switch outcome {
	case chess.WhiteWon:
		return "white"
	case chess.BlackWon:
		return "black"
	default:
		return ""
	}
}

func colorName(c chess.Color) string {
	if c == chess.Black {
		return "black"
	}
	return "white"
}
