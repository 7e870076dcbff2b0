// Package detector classifies folders by the marker files they contain.
//
// Detectors inspect a single folder (never recursively) and either return a
// classification or nil. A Chain runs detectors in a fixed priority order and
// keeps the first match, so specific ecosystems win over the generic table:
//
//  1. PythonDetector
//  2. NodeDetector
//  3. GenericDetector
package detector

import (
	"errors"
	"io/fs"
	"os"
	"syscall"

	"github.com/dbsmedya/codeinventory/internal/config"
	"github.com/dbsmedya/codeinventory/internal/logger"
	"github.com/dbsmedya/codeinventory/internal/types"
)

// Detector classifies a single folder.
//
// Detect returns (nil, nil) when the folder does not match. A non-nil error
// means the folder could not be inspected.
type Detector interface {
	Name() string
	Detect(folder string) (*types.Detection, error)
}

// Chain evaluates detectors in order and returns the first match.
type Chain struct {
	detectors []Detector
	log       *logger.Logger
}

// NewChain creates a chain over detectors in the given priority order.
func NewChain(log *logger.Logger, detectors ...Detector) *Chain {
	if log == nil {
		log = logger.NewNop()
	}
	return &Chain{
		detectors: detectors,
		log:       log,
	}
}

// DefaultChain builds the standard Python, Node, generic chain. Extra markers
// are appended to the end of the generic table.
func DefaultChain(log *logger.Logger, extraMarkers ...config.MarkerConfig) *Chain {
	if log == nil {
		log = logger.NewNop()
	}
	chain := NewChain(log,
		NewPythonDetector(log),
		NewNodeDetector(log),
		NewGenericDetector(log, extraMarkers...),
	)
	log.Debugw("Built detector chain", "detectors", chain.Names())
	return chain
}

// Names returns detector names in evaluation order.
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.detectors))
	for _, d := range c.detectors {
		names = append(names, d.Name())
	}
	return names
}

// Detect runs each detector against folder and returns the first match, or
// nil if none matched. A failing detector is logged and skipped.
func (c *Chain) Detect(folder string) *types.Detection {
	log := c.log.WithFolder(folder)
	for _, d := range c.detectors {
		result, err := d.Detect(folder)
		if err != nil {
			log.Debugw("Detector failed",
				"detector", d.Name(),
				"error", err,
			)
			continue
		}

		if result != nil {
			log.Debugw("Detector matched",
				"detector", d.Name(),
				"source", result.Source,
			)
			return result
		}
	}

	return nil
}

// exists reports whether path exists. Missing paths are not an error.
func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	return false, err
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
