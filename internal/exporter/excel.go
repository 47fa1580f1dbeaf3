package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"tdpulse/internal/services"
)

// ExcelWriter exports the aggregate views as a single multi-sheet workbook.
type ExcelWriter struct {
	dir    string
	logger *slog.Logger
}

// NewExcelWriter creates an Excel writer targeting dir.
func NewExcelWriter(dir string, logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{
		dir:    dir,
		logger: logger.With(slog.String("component", "excel_exporter")),
	}
}

// WriteOverview writes one workbook holding every view, one sheet per
// view, and returns the path written.
func (w *ExcelWriter) WriteOverview(o *services.Overview, name string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := sheetsFor(o)
	for i, sh := range sheets {
		index, err := f.NewSheet(sh.Name)
		if err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", sh.Name, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}
		if err := writeSheetRows(f, sh, headerStyle); err != nil {
			return "", err
		}
	}
	// excelize always starts with a default sheet we never use.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	path := filepath.Join(w.dir, name)
	if filepath.Ext(path) == "" {
		path += ".xlsx"
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("export written",
		slog.String("path", path),
		slog.Int("sheets", len(sheets)))
	return path, nil
}

func writeSheetRows(f *excelize.File, sh sheet, headerStyle int) error {
	header := make([]interface{}, len(sh.Headers))
	for i, h := range sh.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", sh.Name, err)
	}
	last, err := excelize.CoordinatesToCellName(len(sh.Headers), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sh.Name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header for %s: %w", sh.Name, err)
	}

	for r, row := range sh.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		start, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sh.Name, start, &cells); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", r+2, sh.Name, err)
		}
	}
	return nil
}
