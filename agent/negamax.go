package agent

import (
	"context"
	"fmt"

	"chessbot/game"
)

const infinity = 1 << 30

type negamaxAgent struct {
	depth int
}

// NewNegamaxAgent returns an agent running a fixed-depth alpha-beta negamax
// search over the simplified evaluation function. Even depths end the search
// on the opponent's replies.
func NewNegamaxAgent(depth int) Agent {
	return &negamaxAgent{depth: depth}
}

func (a *negamaxAgent) ChooseMove(ctx context.Context, fen string) (string, error) {
	if a.depth < 1 {
		return "", fmt.Errorf("negamax depth must be positive, got %d", a.depth)
	}

	position, err := game.ParseFEN(fen)
	if err != nil {
		return "", fmt.Errorf("failed to choose move: %w", err)
	}

	moves := position.LegalMoves()
	if len(moves) == 0 {
		return "", nil
	}

	// Every root move is searched with the full window
	best := 0
	bestScore := -infinity
	for i, move := range moves {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		undo := position.Apply(move)
		score := -search(position, a.depth-1, -infinity, infinity)
		undo()

		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return moves[best].String(), nil
}

// search returns the negamax score of the position from the side to move's
// perspective.
func search(position *game.Position, depth int, alpha, beta int) int {
	if depth == 0 || position.Outcome() != game.Ongoing {
		return game.Evaluate(position)
	}

	best := -infinity
	for _, move := range position.LegalMoves() {
		undo := position.Apply(move)
		score := -search(position, depth-1, -beta, -alpha)
		undo()

		if score > best {
			best = score
			if score > alpha {
				alpha = score
			}
		}
		if score >= beta {
			break // Beta cutoff
		}
	}
	return best
}
