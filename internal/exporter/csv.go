package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tdpulse/internal/services"
)

// CSVWriter exports the aggregate views as one CSV file per view.
type CSVWriter struct {
	dir    string
	logger *slog.Logger

	// BOMPrefix adds a UTF-8 BOM so Excel opens the files with accented
	// participant and course names intact.
	BOMPrefix bool
}

// NewCSVWriter creates a CSV writer targeting dir.
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		dir:       dir,
		logger:    logger.With(slog.String("component", "csv_exporter")),
		BOMPrefix: true,
	}
}

// WriteOverview writes every view and returns the paths written.
func (w *CSVWriter) WriteOverview(o *services.Overview, prefix string) ([]string, error) {
	var paths []string
	for _, sh := range sheetsFor(o) {
		name := fmt.Sprintf("%s_%s.csv", prefix, strings.ToLower(sh.Name))
		path := filepath.Join(w.dir, name)
		if err := w.writeSheet(path, sh); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (w *CSVWriter) writeSheet(path string, sh sheet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if w.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(file)
	cw.Comma = ';'
	if err := cw.Write(sh.Headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range sh.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush export file: %w", err)
	}

	w.logger.Info("export written",
		slog.String("path", path),
		slog.Int("rows", len(sh.Rows)))
	return nil
}
