package cmd

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/codeinventory/internal/config"
	"github.com/dbsmedya/codeinventory/internal/csvexport"
	"github.com/dbsmedya/codeinventory/internal/detector"
	"github.com/dbsmedya/codeinventory/internal/logger"
	"github.com/dbsmedya/codeinventory/internal/pathutil"
	"github.com/dbsmedya/codeinventory/internal/report"
	"github.com/dbsmedya/codeinventory/internal/scanner"
	"github.com/dbsmedya/codeinventory/internal/service"
	"github.com/dbsmedya/codeinventory/internal/walker"
)

var (
	scanInput   string
	scanOutput  string
	scanSummary bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a folder and export the inventory as CSV",
	Long: `Scan walks the input folder recursively, finds every Git repository
root and classifies the repository and each nested project from marker files.
One CSV row is written per project.

Dependency, cache and build folders (node_modules, .venv, dist, build, ...)
are skipped, along with any ignore_dirs or exclude_patterns from the
configuration file.

Exit codes:
  0  inventory written
  1  unexpected failure
  2  invalid input or output path

Example:
  code-inventory scan --input ~/src --output inventory.csv --summary`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanInput, "input", "i", "",
		"Input folder to scan recursively (required)")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "",
		"Output CSV file path (required)")
	scanCmd.Flags().BoolVar(&scanSummary, "summary", false,
		"Print a per-language summary after writing the CSV")
	scanCmd.MarkFlagRequired("input")
	scanCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return inputFailure(err)
	}

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return inputFailure(err)
	}
	defer func() { _ = log.Sync() }()

	log.Debugw("CLI arguments parsed", "input", scanInput, "output", scanOutput)

	svc, err := newService(cfg, log)
	if err != nil {
		log.Errorw("Failed to build inventory service", "error", err)
		return unexpectedFailure()
	}

	log.Info("Starting code inventory scan")
	result, err := svc.Run(scanInput, scanOutput)
	if err != nil {
		if service.IsInputError(err) {
			log.Errorw("Input/output validation error", "error", err)
			return inputFailure(err)
		}
		log.Errorw("Unexpected error while running inventory scan", "error", err)
		return unexpectedFailure()
	}

	log.Infow("Inventory scan completed successfully", "records", len(result.Records))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d record(s) to %s\n", styled(out, color.Green, "Wrote"), len(result.Records), result.OutputPath)

	if scanSummary {
		fmt.Fprintln(out)
		if err := report.Summarize(result.Records).Render(out); err != nil {
			log.Errorw("Failed to render summary", "error", err)
			return unexpectedFailure()
		}
	}

	return nil
}

// newService wires the scan pipeline from configuration.
func newService(cfg *config.Config, log *logger.Logger) (*service.Service, error) {
	resolver, err := pathutil.NewResolver(cfg.Scan.ResolveCacheSize)
	if err != nil {
		return nil, err
	}

	chain := detector.DefaultChain(log.Named("detector"), cfg.Detectors.ExtraMarkers...)
	w := walker.New(log.Named("walker"), walker.Options{
		IgnoreDirs:      cfg.Scan.IgnoreDirs,
		ExcludePatterns: cfg.Scan.ExcludePatterns,
	})

	return service.New(
		scanner.New(chain, w, resolver, log.Named("scanner")),
		csvexport.NewWriter(log.Named("csv")),
		log,
	), nil
}
