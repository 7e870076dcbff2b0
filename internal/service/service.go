// Package service coordinates input validation, scanning and CSV export.
package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dbsmedya/codeinventory/internal/inventory"
	"github.com/dbsmedya/codeinventory/internal/logger"
	"github.com/dbsmedya/codeinventory/internal/pathutil"
)

// writeProbeName is created and removed to test that a directory is writable.
const writeProbeName = ".code_inventory_write_test.tmp"

// Scanner produces inventory records for a root folder.
type Scanner interface {
	Scan(root string) ([]inventory.Record, error)
}

// Writer persists inventory records.
type Writer interface {
	Write(path string, records []inventory.Record) error
}

// Service runs an inventory scan end to end.
type Service struct {
	scanner Scanner
	writer  Writer
	log     *logger.Logger
}

// New creates a Service.
func New(scanner Scanner, writer Writer, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{scanner: scanner, writer: writer, log: log}
}

// Result summarizes a completed run.
type Result struct {
	Records    []inventory.Record
	OutputPath string
}

// Run validates the paths, scans input and writes the records to output.
// Validation failures are returned as *InputError before any scanning.
func (s *Service) Run(input, output string) (*Result, error) {
	inputPath, err := pathutil.Resolve(input)
	if err != nil {
		return nil, fmt.Errorf("resolve input path: %w", err)
	}
	outputPath, err := pathutil.Resolve(output)
	if err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}

	if err := ValidateInput(inputPath); err != nil {
		return nil, err
	}
	if err := ValidateOutput(outputPath); err != nil {
		return nil, err
	}

	s.log.Infow("Starting inventory scan", "input", inputPath)
	s.log.Debugw("Output CSV path resolved", "output", outputPath)

	records, err := s.scanner.Scan(inputPath)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", inputPath, err)
	}
	s.log.Infow("Detected project records", "count", len(records))

	if err := s.writer.Write(outputPath, records); err != nil {
		return nil, fmt.Errorf("write inventory: %w", err)
	}
	s.log.Infow("Inventory CSV written successfully", "output", outputPath)

	return &Result{Records: records, OutputPath: outputPath}, nil
}

// ValidateInput checks that path exists, is a directory and can be listed.
func ValidateInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &InputError{Kind: ErrInputNotFound, Path: path}
		}
		return &InputError{Kind: ErrInputUnreadable, Path: path}
	}
	if !info.IsDir() {
		return &InputError{Kind: ErrInputNotDirectory, Path: path}
	}
	if !readableDir(path) {
		return &InputError{Kind: ErrInputUnreadable, Path: path}
	}
	return nil
}

// ValidateOutput checks the parent of path when it already exists: it must be
// a writable directory. A missing parent is created later by the writer, so
// only its nearest existing ancestor is checked to be a directory.
func ValidateOutput(path string) error {
	parent := filepath.Dir(filepath.FromSlash(path))

	info, err := os.Stat(parent)
	if err != nil {
		// Missing parents are created by the writer, which fails if an
		// ancestor is not a directory.
		if ancestor, aInfo := nearestExisting(parent); aInfo != nil && !aInfo.IsDir() {
			return &InputError{Kind: ErrOutputParentNotDirectory, Path: filepath.ToSlash(ancestor)}
		}
		return nil
	}
	if !info.IsDir() {
		return &InputError{Kind: ErrOutputParentNotDirectory, Path: filepath.ToSlash(parent)}
	}
	if !writableDir(parent) {
		return &InputError{Kind: ErrOutputParentUnwritable, Path: filepath.ToSlash(parent)}
	}
	return nil
}

// nearestExisting returns the closest ancestor of path that exists, or a nil
// FileInfo when none can be stat'ed.
func nearestExisting(path string) (string, os.FileInfo) {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if info, err := os.Stat(dir); err == nil {
			return dir, info
		}
		if next := filepath.Dir(dir); next == dir {
			return "", nil
		}
	}
}

func readableDir(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = f.ReadDir(1)
	return err == nil || errors.Is(err, io.EOF)
}

func writableDir(path string) bool {
	probe := filepath.Join(path, writeProbeName)
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return false
	}
	_ = f.Close()
	return os.Remove(probe) == nil
}
