// Package exporter writes cleaned case report tables to disk.
package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
)

// CSVWriter provides CSV export functionality for cleaned tables
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteDataFrame writes the table to filePath as CSV with a header row and
// no synthetic row index, overwriting any existing file. The target
// directory is created if needed.
func (w *CSVWriter) WriteDataFrame(filePath string, df dataframe.DataFrame, options WriteOptions) error {
	w.logger.Info("writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	if err := df.WriteCSV(file, dataframe.WriteHeader(true)); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	return file.Sync()
}
