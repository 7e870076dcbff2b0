package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/codeinventory/internal/detector"
	"github.com/dbsmedya/codeinventory/internal/inventory"
	"github.com/dbsmedya/codeinventory/internal/pathutil"
	"github.com/dbsmedya/codeinventory/internal/service"
)

var detectCmd = &cobra.Command{
	Use:   "detect [folder]",
	Short: "Classify a single folder without scanning",
	Long: `Detect runs the detector chain against one folder (not recursively)
and prints the classification it would receive in an inventory.

Detectors are tried in priority order and the first match wins:
  1. python   pyproject.toml, setup.py, requirements.txt
  2. node     package.json (tsconfig.json selects TypeScript)
  3. generic  Cargo.toml, go.mod, *.csproj, composer.json, extra_markers

Example:
  code-inventory detect ./services/api`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return inputFailure(err)
	}

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return inputFailure(err)
	}
	defer func() { _ = log.Sync() }()

	folder := "."
	if len(args) == 1 {
		folder = args[0]
	}

	resolved, err := pathutil.Resolve(folder)
	if err != nil {
		return inputFailure(err)
	}
	if err := service.ValidateInput(resolved); err != nil {
		return inputFailure(err)
	}

	chain := detector.DefaultChain(log.Named("detector"), cfg.Detectors.ExtraMarkers...)
	result := chain.Detect(resolved)

	out := cmd.OutOrStdout()
	if result == nil {
		fmt.Fprintf(out, "No project markers found in %s\n", resolved)
		return nil
	}

	fmt.Fprintf(out, "Folder:    %s\n", resolved)
	fmt.Fprintf(out, "Type:      %s\n", result.ProjectType)
	fmt.Fprintf(out, "Language:  %s\n", result.PrimaryLanguage)
	fmt.Fprintf(out, "Keywords:  %s\n", strings.Join(inventory.NormalizeKeywords(result.Keywords), inventory.KeywordSeparator))
	fmt.Fprintf(out, "Source:    %s\n", result.Source)
	fmt.Fprintf(out, "ID:        %s\n", inventory.MakeProjectID(resolved))

	return nil
}
