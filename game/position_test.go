package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	foolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	oneMoveFEN   = "k7/8/8/8/8/8/6PP/r5K1 w - - 0 1"
)

func mustParse(t *testing.T, fen string) *Position {
	t.Helper()
	p, err := ParseFEN(fen)
	require.NoError(t, err)
	return p
}

func TestParseFEN(t *testing.T) {
	t.Run("parsing the starting position", func(t *testing.T) {
		p := mustParse(t, StartFEN)

		require.Equal(t, White, p.SideToMove())
		require.Len(t, p.LegalMoves(), 20, "Starting position should have 20 legal moves")
		require.Equal(t, Ongoing, p.Outcome())
	})

	t.Run("parsing a position without move counters", func(t *testing.T) {
		p := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - -")

		require.Equal(t, Black, p.SideToMove())
	})

	t.Run("rejecting malformed positions", func(t *testing.T) {
		for _, fen := range []string{
			"",
			"not a fen",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",          // 7 ranks
			"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // 9 files
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w kq - 0 1",   // no white king
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
			"rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			"k7/8/8/8/8/8/8/K6r b - - 0 1", // white, not to move, is in check
		} {
			_, err := ParseFEN(fen)
			require.ErrorIs(t, err, ErrInvalidPosition, "FEN %q should be rejected", fen)
		}
	})

	t.Run("round tripping through FEN", func(t *testing.T) {
		p := mustParse(t, StartFEN)
		again := mustParse(t, p.FEN())

		require.Equal(t, p.FEN(), again.FEN())
	})
}

func TestPositionApply(t *testing.T) {
	t.Run("undo restores the position", func(t *testing.T) {
		p := mustParse(t, StartFEN)
		before := p.FEN()

		move, ok := p.Find("e2e4")
		require.True(t, ok)
		undo := p.Apply(move)
		require.NotEqual(t, before, p.FEN())
		require.Equal(t, Black, p.SideToMove())

		undo()
		require.Equal(t, before, p.FEN())
		require.Equal(t, White, p.SideToMove())
		require.Len(t, p.LegalMoves(), 20)
	})

	t.Run("moves are encoded in UCI", func(t *testing.T) {
		p := mustParse(t, StartFEN)
		encoded := map[string]bool{}
		for _, m := range p.LegalMoves() {
			encoded[m.String()] = true
		}

		require.True(t, encoded["e2e4"])
		require.True(t, encoded["g1f3"])
		require.False(t, encoded["e2e5"])
	})

	t.Run("panics on foreign moves", func(t *testing.T) {
		p := mustParse(t, StartFEN)

		require.Panics(t, func() {
			p.Apply(foreignMove("e2e4"))
		})
	})
}

type foreignMove string

func (m foreignMove) String() string { return string(m) }

func TestPositionOutcome(t *testing.T) {
	t.Run("checkmate is decisive", func(t *testing.T) {
		p := mustParse(t, foolsMateFEN)

		require.True(t, p.InCheck())
		require.Empty(t, p.LegalMoves())
		require.Equal(t, Decisive, p.Outcome())
	})

	t.Run("stalemate is a draw", func(t *testing.T) {
		p := mustParse(t, stalemateFEN)

		require.False(t, p.InCheck())
		require.Equal(t, Draw, p.Outcome())
	})

	t.Run("single legal move", func(t *testing.T) {
		p := mustParse(t, oneMoveFEN)

		require.Len(t, p.LegalMoves(), 1)
		require.Equal(t, "g1f2", p.LegalMoves()[0].String())
		require.Equal(t, Ongoing, p.Outcome())
	})

	t.Run("insufficient material is a draw", func(t *testing.T) {
		require.Equal(t, Draw, mustParse(t, "8/8/8/4k3/8/8/8/4K3 w - - 0 1").Outcome(), "K vs K")
		require.Equal(t, Draw, mustParse(t, "8/8/8/4k3/8/8/8/4KN2 w - - 0 1").Outcome(), "KN vs K")
		require.Equal(t, Draw, mustParse(t, "8/8/8/3bk3/8/8/8/4KB2 w - - 0 1").Outcome(), "KB vs KB, same color")
		require.Equal(t, Ongoing, mustParse(t, "8/8/8/2b1k3/8/8/8/4KB2 w - - 0 1").Outcome(), "KB vs KB, opposite colors")
		require.Equal(t, Ongoing, mustParse(t, "8/8/8/4k3/8/8/3R4/4K3 w - - 0 1").Outcome(), "KR vs K")
	})

	t.Run("fifty-move rule is a draw", func(t *testing.T) {
		require.Equal(t, Draw, mustParse(t, "8/8/8/4k3/8/8/3R4/4K3 w - - 100 80").Outcome())
		require.Equal(t, Ongoing, mustParse(t, "8/8/8/4k3/8/8/3R4/4K3 w - - 99 80").Outcome())
	})

	t.Run("threefold repetition is a draw", func(t *testing.T) {
		p := mustParse(t, StartFEN)
		play := func(uci string) {
			move, ok := p.Find(uci)
			require.True(t, ok, "move %s should be legal", uci)
			p.Apply(move)
		}

		for _, uci := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
			play(uci)
		}
		require.Equal(t, Ongoing, p.Outcome(), "Second occurrence should not draw")

		for _, uci := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
			play(uci)
		}
		require.Equal(t, Draw, p.Outcome(), "Third occurrence should draw")
	})
}

func TestCanonical(t *testing.T) {
	rules := NewStandardRules()

	t.Run("canonical form is stable", func(t *testing.T) {
		fen, err := Canonical(rules, StartFEN)
		require.NoError(t, err)

		again, err := Canonical(rules, fen)
		require.NoError(t, err)
		require.Equal(t, fen, again)
	})

	t.Run("invalid positions", func(t *testing.T) {
		_, err := Canonical(rules, "8/8/8/8 w - - 0 1")
		require.ErrorIs(t, err, ErrInvalidPosition)
	})
}
