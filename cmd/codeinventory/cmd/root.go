package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/codeinventory/internal/config"
	"github.com/dbsmedya/codeinventory/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "code-inventory",
	Short: "Inventory code repositories and nested projects",
	Long: `Scan a folder for code repositories and nested projects,
then export a CSV inventory.

Repositories are folders holding a .git directory or file. Each repository
and every project nested inside it is classified from marker files
(pyproject.toml, package.json, go.mod, Cargo.toml, ...) and written as one
CSV row. Nothing is sent over the network; remote URLs come from the local
.git/config.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and exits with its status code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree with args and returns the exit code.
// Errors raised by cobra itself (unknown flags, missing required flags) are
// usage errors and exit like input errors.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(stderr, "%s %s\n", styled(stderr, color.Red, "Error:"), err)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInputError
}

// styled colours s when w is a terminal.
func styled(w io.Writer, c color.Color, s string) string {
	f, ok := w.(*os.File)
	if !ok {
		return s
	}
	info, err := f.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return s
	}
	return c.Sprint(s)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"Path to an optional YAML configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// loadConfig reads the configuration file (if any), applies flag overrides
// and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyOverrides(logLevel, logFormat, verbose)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger for a command. Logs that target stderr go to
// the command's error stream so they never mix with result output.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*logger.Logger, error) {
	switch cfg.Logging.Output {
	case "", "stderr":
		return logger.NewWithWriter(&cfg.Logging, cmd.ErrOrStderr()), nil
	default:
		log, err := logger.New(&cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		return log, nil
	}
}
