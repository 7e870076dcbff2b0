// Package config provides configuration structures and loading for code-inventory.
package config

// Config represents the complete application configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
	Scan      ScanConfig      `yaml:"scan" mapstructure:"scan"`
	Detectors DetectorsConfig `yaml:"detectors" mapstructure:"detectors"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// ScanConfig represents directory traversal settings.
type ScanConfig struct {
	// IgnoreDirs are directory names pruned in addition to the built-in deny-list.
	IgnoreDirs []string `yaml:"ignore_dirs" mapstructure:"ignore_dirs"`
	// ExcludePatterns are doublestar globs matched against the slash-separated
	// path of a directory relative to the walk root.
	ExcludePatterns []string `yaml:"exclude_patterns" mapstructure:"exclude_patterns"`
	// ResolveCacheSize bounds the resolved-path cache.
	ResolveCacheSize int `yaml:"resolve_cache_size" mapstructure:"resolve_cache_size"`
}

// DetectorsConfig represents detector chain settings.
type DetectorsConfig struct {
	ExtraMarkers []MarkerConfig `yaml:"extra_markers" mapstructure:"extra_markers"`
}

// MarkerConfig describes one entry appended to the generic marker table.
// A marker starting with "." is matched as a file extension.
type MarkerConfig struct {
	Marker      string   `yaml:"marker" mapstructure:"marker"`
	ProjectType string   `yaml:"project_type" mapstructure:"project_type"`
	Language    string   `yaml:"language" mapstructure:"language"`
	Keywords    []string `yaml:"keywords" mapstructure:"keywords"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Scan: ScanConfig{
			ResolveCacheSize: 4096,
		},
	}
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-empty values are applied; verbose forces debug logging.
func (c *Config) ApplyOverrides(logLevel, logFormat string, verbose bool) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if verbose {
		c.Logging.Level = "debug"
	}
}
