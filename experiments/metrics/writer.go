package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"chessbot/config"
)

type GameRecord struct {
	ID    int
	White int // config.Agent.ID
	Black int // config.Agent.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of dir named after the experiment and the
// current timestamp.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []config.Agent) error {
	header := []string{"id", "strategy", "iterations_new", "iterations_reused", "exploration", "depth", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		exploration := ""
		if c.Exploration != nil {
			exploration = strconv.FormatFloat(*c.Exploration, 'f', -1, 64)
		}
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			string(c.Strategy),
			strconv.Itoa(c.IterationsNew),
			strconv.Itoa(c.IterationsReused),
			exploration,
			strconv.Itoa(c.Depth),
			strconv.FormatUint(c.Seed, 10),
		})
	}

	if err := w.writeCSV("agent_configs.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write agent configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "white", "black", "starting_player", "winner", "termination", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.White),
			strconv.Itoa(record.Black),
			record.StartingPlayer,
			record.Winner,
			record.Termination,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}

	if err := w.writeCSV("game_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "duration", "budget", "episodes", "rollout_plies", "tree_size", "root_visits", "is_tree_reused"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			record.Duration.String(),
			strconv.Itoa(record.Budget),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.RolloutPlies),
			strconv.Itoa(record.TreeSize),
			strconv.Itoa(record.RootVisits),
			strconv.FormatBool(record.IsTreeReused),
		})
	}

	if err := w.writeCSV("move_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

// WritePGN stores the record of one game as game_<id>.pgn.
func (w *Writer) WritePGN(game int, pgn string) error {
	path := filepath.Join(w.baseDir, fmt.Sprintf("game_%d.pgn", game))
	err := os.WriteFile(path, []byte(pgn), 0644)
	if err != nil {
		return fmt.Errorf("failed to write pgn of game %d: %w", game, err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) (err error) {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return err
	}
	return writer.WriteAll(rows)
}
