package agent

import (
	"context"
	"fmt"

	"chessbot/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rules  game.Rules
	random *rand.Rand
}

// NewRandomAgent returns an agent playing uniformly random legal moves.
func NewRandomAgent(random *rand.Rand) Agent {
	return &randomAgent{rules: game.NewStandardRules(), random: random}
}

func (a *randomAgent) ChooseMove(ctx context.Context, fen string) (string, error) {
	board, err := a.rules.Parse(fen)
	if err != nil {
		return "", fmt.Errorf("failed to choose move: %w", err)
	}

	moves := board.LegalMoves()
	if len(moves) == 0 {
		return "", nil
	}
	return moves[a.random.Intn(len(moves))].String(), nil
}
