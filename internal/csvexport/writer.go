// Package csvexport writes inventory records to a CSV file.
package csvexport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/dbsmedya/codeinventory/internal/inventory"
	"github.com/dbsmedya/codeinventory/internal/logger"
)

// ErrInvalidOutputPath is returned for an empty output path or one whose base
// name is "." or "..".
var ErrInvalidOutputPath = errors.New("invalid output file path")

// Writer writes inventory records as CSV with a fixed header.
type Writer struct {
	log *logger.Logger
}

// NewWriter creates a Writer.
func NewWriter(log *logger.Logger) *Writer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Writer{log: log}
}

// Write creates (or truncates) path and writes the header followed by one row
// per record. Missing parent directories are created.
func (w *Writer) Write(path string, records []inventory.Record) (err error) {
	if err := w.validatePath(path); err != nil {
		return err
	}

	parent := filepath.Dir(path)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", parent, err)
	}
	w.log.Debugw("Ensured output directory exists", "dir", parent)

	w.log.Infow("Writing inventory records to CSV", "records", len(records), "path", path)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	cw := csv.NewWriter(f)
	cw.UseCRLF = true

	if err := cw.Write(inventory.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(inventory.Columns))
	for i, record := range records {
		values := record.CSVRow()
		for j, col := range inventory.Columns {
			row[j] = values[col]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
		w.log.Debugw("Wrote CSV row", "row", i+1, "total", len(records), "project", record.ProjectName())
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	w.log.Infow("CSV write complete", "path", path)
	return nil
}

func (w *Writer) validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: output file path cannot be empty", ErrInvalidOutputPath)
	}

	switch filepath.Base(path) {
	case ".", "..", string(filepath.Separator):
		return fmt.Errorf("%w: %s", ErrInvalidOutputPath, path)
	}

	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		w.log.Warnw("Output file does not use .csv extension", "path", path)
	}

	return nil
}
