package game

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// Mate is the score of a checkmated side to move, negated.
const Mate = 100000

const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

// Piece-square tables from white's point of view, a8 first. White pieces
// index them with sq^56, black pieces with sq.
var (
	pawnTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	knightTable = [64]int{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}
	bishopTable = [64]int{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	rookTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	}
	queenTable = [64]int{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}
	kingMiddleTable = [64]int{
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	}
	kingEndTable = [64]int{
		-50, -40, -30, -20, -20, -30, -40, -50,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-50, -30, -30, -30, -30, -30, -30, -50,
	}
)

// Evaluate scores the position in centipawns from the side to move's
// perspective using material and piece-square tables. A checkmated side to
// move scores -Mate and a drawn position scores 0.
func Evaluate(p *Position) int {
	switch p.Outcome() {
	case Decisive:
		return -Mate
	case Draw:
		return 0
	}

	endgame := IsEndgame(p)
	score := evaluateSide(&p.board.White, 56, endgame) - evaluateSide(&p.board.Black, 0, endgame)
	if p.SideToMove() == Black {
		return -score
	}
	return score
}

// IsEndgame holds when no side has a queen together with more than one
// minor piece.
func IsEndgame(p *Position) bool {
	w, b := &p.board.White, &p.board.Black
	wMinors := bits.OnesCount64(w.Knights | w.Bishops)
	bMinors := bits.OnesCount64(b.Knights | b.Bishops)
	return !((w.Queens != 0 && wMinors > 1) || (b.Queens != 0 && bMinors > 1))
}

func evaluateSide(bb *dragontoothmg.Bitboards, mirror int, endgame bool) int {
	kingTable := &kingMiddleTable
	if endgame {
		kingTable = &kingEndTable
	}

	score := 0
	score += sumPieces(bb.Pawns, PawnValue, &pawnTable, mirror)
	score += sumPieces(bb.Knights, KnightValue, &knightTable, mirror)
	score += sumPieces(bb.Bishops, BishopValue, &bishopTable, mirror)
	score += sumPieces(bb.Rooks, RookValue, &rookTable, mirror)
	score += sumPieces(bb.Queens, QueenValue, &queenTable, mirror)
	score += sumPieces(bb.Kings, KingValue, kingTable, mirror)
	return score
}

func sumPieces(pieces uint64, value int, table *[64]int, mirror int) int {
	score := 0
	for pieces != 0 {
		sq := bits.TrailingZeros64(pieces)
		pieces &= pieces - 1
		score += value + table[sq^mirror]
	}
	return score
}
