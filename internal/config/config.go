package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level         string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format        string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output        string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath      string `yaml:"file_path" envconfig:"FILE_PATH"`
	EnableTracing bool   `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
}

// PipelineConfig contains the snapshot processing configuration.
// Empty path fields are resolved against the executable directory defaults.
type PipelineConfig struct {
	InputFile       string `yaml:"input_file" envconfig:"INPUT_FILE"`
	OutputFile      string `yaml:"output_file" envconfig:"OUTPUT_FILE"`
	ChartsDir       string `yaml:"charts_dir" envconfig:"CHARTS_DIR"`
	CountryFilter   string `yaml:"country_filter" envconfig:"COUNTRY_FILTER" validate:"required"`
	TimestampColumn string `yaml:"timestamp_column" envconfig:"TIMESTAMP_COLUMN" validate:"required"`
}

// Default returns the configuration used when no file or environment
// overrides are present: one fixed input snapshot, one output file, charts
// next to them.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "debug",
			Format: "json",
			Output: "both",
		},
		Pipeline: PipelineConfig{
			CountryFilter:   "US",
			TimestampColumn: "Last_Update",
		},
	}
}

// Load loads configuration from the config file and environment variables.
// Environment variables (prefix COVID) take precedence over the file, which
// takes precedence over the defaults.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("COVID", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file into cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against the struct validation rules
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// ResolvePaths fills empty pipeline paths from the executable-relative
// defaults and resolves the log file location.
func (c *Config) ResolvePaths(paths *Paths) {
	if c.Pipeline.InputFile == "" {
		c.Pipeline.InputFile = paths.SnapshotFile
	}
	if c.Pipeline.OutputFile == "" {
		c.Pipeline.OutputFile = paths.ProcessedFile
	}
	if c.Pipeline.ChartsDir == "" {
		c.Pipeline.ChartsDir = paths.ChartsDir
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = paths.GetLogPath("processor.log")
	}
}

// getConfigFilePath returns the default config file location, next to the
// executable (never the current working directory).
func getConfigFilePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(filepath.Dir(exe), "config.yaml")
}
