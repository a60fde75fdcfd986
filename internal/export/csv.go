package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/dwkang/goalplanner/internal/contracts"
)

// Writer exports price series and computed metrics as CSV files, one
// file per symbol, for downstream spreadsheet or notebook analysis.
type Writer struct {
	dir string
	log zerolog.Logger
}

// NewWriter creates a CSV writer rooted at dir. The directory is
// created on first export.
func NewWriter(dir string, log zerolog.Logger) *Writer {
	return &Writer{
		dir: dir,
		log: log.With().Str("component", "export.csv").Logger(),
	}
}

// WriteSeries exports a price series to <dir>/<symbol>.csv with a
// Date,Close header, oldest row first.
func (w *Writer) WriteSeries(series *contracts.PriceSeries) (string, error) {
	if series == nil || series.IsEmpty() {
		return "", fmt.Errorf("series for export is empty: %w", contracts.ErrInvalidInput)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(w.dir, series.Symbol+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := w.writeSeriesTo(f, series); err != nil {
		return "", err
	}

	w.log.Info().
		Str("symbol", series.Symbol).
		Str("path", path).
		Int("rows", series.Len()).
		Msg("series exported")

	return path, nil
}

func (w *Writer) writeSeriesTo(out io.Writer, series *contracts.PriceSeries) error {
	cw := csv.NewWriter(out)

	if err := cw.Write([]string{"Date", "Close"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range series.Points {
		record := []string{
			p.Date.Format("2006-01-02"),
			strconv.FormatFloat(p.Close, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMetrics exports one row per symbol to <dir>/metrics.csv.
func (w *Writer) WriteMetrics(candidates []contracts.Candidate) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("no metrics to export: %w", contracts.ErrEmptyCandidateSet)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(w.dir, "metrics.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"Symbol", "AvgAnnualReturn", "Volatility", "MaxDrawdown", "LatestPrice"}); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, c := range candidates {
		record := []string{
			c.Symbol,
			strconv.FormatFloat(c.Metrics.AvgAnnualReturn, 'f', -1, 64),
			strconv.FormatFloat(c.Metrics.Volatility, 'f', -1, 64),
			strconv.FormatFloat(c.Metrics.MaxDrawdown, 'f', -1, 64),
			strconv.FormatFloat(c.Metrics.LatestPrice, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}

	w.log.Info().
		Str("path", path).
		Int("rows", len(candidates)).
		Msg("metrics exported")

	return path, nil
}
