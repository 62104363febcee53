package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of dir named by the current timestamp.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(dir, timestamp)
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

func (w *Writer) WriteDecisions(records []DecisionMetric) error {
	path := filepath.Join(w.baseDir, "decisions.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create decisions file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"game", "turn", "player", "color", "options", "candidates", "action", "score", "fallback", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write decisions header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Game,
			strconv.Itoa(record.Turn),
			record.Player,
			string(record.Color),
			strconv.Itoa(record.Options),
			strconv.Itoa(record.Candidates),
			record.Chosen.String(),
			strconv.FormatFloat(record.Score, 'f', 6, 64),
			strconv.FormatBool(record.Fallback),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write decision row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (w *Writer) WriteSummary(summary Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	path := filepath.Join(w.baseDir, "summary.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}

// Flush writes everything a collector holds.
func (w *Writer) Flush(c *Collector) error {
	if err := w.WriteDecisions(c.Decisions()); err != nil {
		return err
	}
	return w.WriteSummary(c.Summary())
}
