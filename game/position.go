package game

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// Light squares, with a1 (bit 0) being dark
const lightSquares uint64 = 0x55AA55AA55AA55AA

type uciMove dragontoothmg.Move

func (m uciMove) String() string {
	dm := dragontoothmg.Move(m)
	return dm.String()
}

// Castling and en passant rights are not part of the key, which makes
// repetition detection slightly more eager than the FIDE rule.
type repetitionKey struct {
	white   dragontoothmg.Bitboards
	black   dragontoothmg.Bitboards
	wtomove bool
}

// Position is a Board backed by dragontoothmg. Repetitions are only detected
// among positions reached through Apply since parsing.
type Position struct {
	board   dragontoothmg.Board
	history []repetitionKey
	moves   []Move
	cached  bool
}

func ParseFEN(fen string) (p *Position, err error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%w: expected 4 to 6 fields, got %d", ErrInvalidPosition, len(fields))
	}
	if err := validatePlacement(fields[0]); err != nil {
		return nil, err
	}
	if fields[1] != "w" && fields[1] != "b" {
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidPosition, fields[1])
	}
	switch len(fields) {
	case 4:
		fields = append(fields, "0", "1")
	case 5:
		fields = append(fields, "1")
	}

	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("%w: %v", ErrInvalidPosition, r)
		}
	}()
	board := dragontoothmg.ParseFen(strings.Join(fields, " "))

	// The side that just moved cannot have left its king in check
	opponent := board
	opponent.Wtomove = !opponent.Wtomove
	if opponent.OurKingInCheck() {
		return nil, fmt.Errorf("%w: side not to move is in check", ErrInvalidPosition)
	}
	return &Position{board: board}, nil
}

func validatePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidPosition, len(ranks))
	}

	kings := map[rune]int{}
	for i, rank := range ranks {
		files := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				files += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				files++
				if c == 'k' || c == 'K' {
					kings[c]++
				}
			default:
				return fmt.Errorf("%w: unexpected %q in rank %d", ErrInvalidPosition, c, 8-i)
			}
		}
		if files != 8 {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidPosition, 8-i, files)
		}
	}
	if kings['K'] != 1 || kings['k'] != 1 {
		return fmt.Errorf("%w: each side needs exactly one king", ErrInvalidPosition)
	}
	return nil
}

func (p *Position) SideToMove() Color {
	if p.board.Wtomove {
		return White
	}
	return Black
}

// LegalMoves returns the legal moves of the position. The slice is shared
// until the next Apply or undo and must not be modified.
func (p *Position) LegalMoves() []Move {
	if !p.cached {
		generated := p.board.GenerateLegalMoves()
		p.moves = make([]Move, len(generated))
		for i, m := range generated {
			p.moves[i] = uciMove(m)
		}
		p.cached = true
	}
	return p.moves
}

func (p *Position) Apply(m Move) func() {
	um, ok := m.(uciMove)
	if !ok {
		panic(fmt.Sprintf("move %v was not generated by a Position", m))
	}

	p.history = append(p.history, p.key())
	unapply := p.board.Apply(dragontoothmg.Move(um))
	p.moves, p.cached = nil, false

	return func() {
		unapply()
		p.history = p.history[:len(p.history)-1]
		p.moves, p.cached = nil, false
	}
}

// Find returns the legal move encoded as uci, if any.
func (p *Position) Find(uci string) (Move, bool) {
	for _, m := range p.LegalMoves() {
		if m.String() == uci {
			return m, true
		}
	}
	return nil, false
}

func (p *Position) InCheck() bool {
	return p.board.OurKingInCheck()
}

func (p *Position) Outcome() Outcome {
	if len(p.LegalMoves()) == 0 {
		if p.board.OurKingInCheck() {
			return Decisive
		}
		return Draw // Stalemate
	}
	if p.board.Halfmoveclock >= 100 || p.insufficientMaterial() || p.repetitions() >= 3 {
		return Draw
	}
	return Ongoing
}

func (p *Position) FEN() string {
	return p.board.ToFen()
}

func (p *Position) key() repetitionKey {
	return repetitionKey{white: p.board.White, black: p.board.Black, wtomove: p.board.Wtomove}
}

// repetitions counts occurrences of the current position since the last
// irreversible move, the current one included.
func (p *Position) repetitions() int {
	key := p.key()
	count := 1
	limit := int(p.board.Halfmoveclock)
	for i := len(p.history) - 2; i >= 0 && len(p.history)-i <= limit; i -= 2 {
		if p.history[i] == key {
			count++
		}
	}
	return count
}

func (p *Position) insufficientMaterial() bool {
	w, b := &p.board.White, &p.board.Black
	if w.Pawns|b.Pawns|w.Rooks|b.Rooks|w.Queens|b.Queens != 0 {
		return false
	}
	if bits.OnesCount64(w.Knights|w.Bishops|b.Knights|b.Bishops) <= 1 {
		return true
	}
	if w.Knights|b.Knights != 0 {
		return false
	}
	// Bishops only: a draw when they all share one square color
	bishops := w.Bishops | b.Bishops
	return bishops&lightSquares == 0 || bishops&^lightSquares == 0
}
