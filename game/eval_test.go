package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("starting position is balanced", func(t *testing.T) {
		require.Equal(t, 0, Evaluate(mustParse(t, StartFEN)))
	})

	t.Run("score is from the side to move's perspective", func(t *testing.T) {
		white := mustParse(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
		black := mustParse(t, "4k3/8/8/8/8/8/8/3QK3 b - - 0 1")

		require.Greater(t, Evaluate(white), 0, "White is a queen up")
		require.Less(t, Evaluate(black), 0, "Black is a queen down")
		require.Equal(t, Evaluate(white), -Evaluate(black))
	})

	t.Run("checkmated side scores -Mate", func(t *testing.T) {
		require.Equal(t, -Mate, Evaluate(mustParse(t, foolsMateFEN)))
	})

	t.Run("draws score zero", func(t *testing.T) {
		require.Equal(t, 0, Evaluate(mustParse(t, stalemateFEN)))
	})

	t.Run("advanced pawns are rewarded", func(t *testing.T) {
		home := mustParse(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
		advanced := mustParse(t, "4k3/4P3/8/8/8/8/8/4K3 w - - 0 1")

		require.Greater(t, Evaluate(advanced), Evaluate(home))
	})
}

func TestIsEndgame(t *testing.T) {
	require.False(t, IsEndgame(mustParse(t, StartFEN)))
	require.True(t, IsEndgame(mustParse(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")), "Queen without minors")
	require.True(t, IsEndgame(mustParse(t, "rn2k3/8/8/8/8/8/8/4K3 w - - 0 1")), "No queens")
}
