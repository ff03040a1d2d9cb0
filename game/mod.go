package game

import "errors"

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidPosition = errors.New("invalid position")

type Color int8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

type Outcome int8

const (
	Ongoing  Outcome = iota
	Draw             // Stalemate, fifty-move rule, repetition or insufficient material
	Decisive         // The side to move has been checkmated
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Draw:
		return "draw"
	case Decisive:
		return "decisive"
	default:
		return "unknown"
	}
}

// Move is a legal move encoded in UCI long algebraic notation by String.
type Move interface {
	String() string
}

// Board is a mutable chess position. Apply returns a function that restores
// the position to its state before the move.
type Board interface {
	SideToMove() Color
	LegalMoves() []Move
	Apply(Move) (undo func())
	Outcome() Outcome
	FEN() string
}

// Rules parses positions into boards.
type Rules interface {
	Parse(fen string) (Board, error)
}
