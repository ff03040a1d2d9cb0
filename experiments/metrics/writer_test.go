package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chessbot/config"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "test")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, filepath.Join(dir, "test"), filepath.Dir(w.Dir()))

	t.Run("agent configs", func(t *testing.T) {
		c := 0.5
		err := w.WriteAgentConfigs([]config.Agent{
			{ID: 1, Strategy: config.MCTS, IterationsNew: 100, IterationsReused: 10, Exploration: &c, Depth: 2, Seed: 9},
			{ID: 2, Strategy: config.Random, IterationsNew: 1, IterationsReused: 1, Depth: 1},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"1", "mcts", "100", "10", "0.5", "2", "9"}, rows[1])
		require.Equal(t, "", rows[2][4])
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID:    1,
			White: 2,
			Black: 1,
			GameMetric: GameMetric{
				StartingPlayer: "white",
				Winner:         "black",
				Termination:    "Checkmate",
				StartTime:      start,
				EndTime:        start.Add(time.Second),
				Duration:       time.Second,
				TotalMoves:     4,
			},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "2", "1", "white", "black", "Checkmate", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "4"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{
			{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: "white", Move: "e2e4", SearchMetric: SearchMetric{Budget: 5000, Episodes: 5000, IsTreeReused: false}}},
			{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: "black", Move: "e7e5"}},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, "e2e4", rows[1][3])
		require.Equal(t, "5000", rows[1][5])
		require.Equal(t, "false", rows[1][10])
	})

	t.Run("pgn", func(t *testing.T) {
		require.NoError(t, w.WritePGN(3, "1. e4 e5 *"))

		data, err := os.ReadFile(filepath.Join(w.Dir(), "game_3.pgn"))
		require.NoError(t, err)
		require.Equal(t, "1. e4 e5 *", string(data))
	})
}
