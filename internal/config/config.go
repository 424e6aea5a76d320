package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"salesclean/internal/cleaning"
)

// validate holds the shared validator with the custom contamination rule
var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("contamination", validContamination); err != nil {
		panic(fmt.Sprintf("failed to register contamination validation: %v", err))
	}
}

// validContamination accepts "auto" or a fraction inside the supported range
func validContamination(fl validator.FieldLevel) bool {
	_, err := cleaning.ParseContamination(fl.Field().String())
	return err == nil
}

// Config represents the complete application configuration
type Config struct {
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// CleaningConfig controls how a cleaning run behaves
type CleaningConfig struct {
	Contamination string `yaml:"contamination" envconfig:"CONTAMINATION" validate:"required,contamination"`
	RollingWindow int    `yaml:"rolling_window" envconfig:"ROLLING_WINDOW" validate:"min=1"`
	Seed          int64  `yaml:"seed" envconfig:"SEED"`
	Trees         int    `yaml:"trees" envconfig:"TREES" validate:"min=1"`
	SampleSize    int    `yaml:"sample_size" envconfig:"SAMPLE_SIZE" validate:"min=2"`
	Detector      string `yaml:"detector" envconfig:"DETECTOR" validate:"oneof=isolation-forest robust-zscore"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Load loads configuration from environment variables and config file.
// Environment variables win over the file, the file wins over defaults.
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("SALES", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Fill whatever is still unset from the defaults
	cfg = mergeConfigs(*Default(), cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs fills zero-valued fields of overlay from base. A seed of 0
// therefore falls back to the base seed.
func mergeConfigs(base, overlay Config) Config {
	if overlay.Cleaning.Contamination == "" {
		overlay.Cleaning.Contamination = base.Cleaning.Contamination
	}
	if overlay.Cleaning.RollingWindow == 0 {
		overlay.Cleaning.RollingWindow = base.Cleaning.RollingWindow
	}
	if overlay.Cleaning.Seed == 0 {
		overlay.Cleaning.Seed = base.Cleaning.Seed
	}
	if overlay.Cleaning.Trees == 0 {
		overlay.Cleaning.Trees = base.Cleaning.Trees
	}
	if overlay.Cleaning.SampleSize == 0 {
		overlay.Cleaning.SampleSize = base.Cleaning.SampleSize
	}
	if overlay.Cleaning.Detector == "" {
		overlay.Cleaning.Detector = base.Cleaning.Detector
	}

	if overlay.Logging.Level == "" {
		overlay.Logging.Level = base.Logging.Level
	}
	if overlay.Logging.Format == "" {
		overlay.Logging.Format = base.Logging.Format
	}
	if overlay.Logging.Output == "" {
		overlay.Logging.Output = base.Logging.Output
	}
	if overlay.Logging.FilePath == "" {
		overlay.Logging.FilePath = base.Logging.FilePath
	}

	if overlay.Paths.InputDir == "" {
		overlay.Paths.InputDir = base.Paths.InputDir
	}
	if overlay.Paths.OutputDir == "" {
		overlay.Paths.OutputDir = base.Paths.OutputDir
	}
	if overlay.Paths.LogsDir == "" {
		overlay.Paths.LogsDir = base.Paths.LogsDir
	}

	return overlay
}

// validate validates the configuration
func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ToPipelineConfig converts the raw cleaning section into a validated
// pipeline configuration.
func (c CleaningConfig) ToPipelineConfig() (cleaning.Config, error) {
	contamination, err := cleaning.ParseContamination(c.Contamination)
	if err != nil {
		return cleaning.Config{}, err
	}

	cfg := cleaning.Config{
		Contamination: contamination,
		RollingWindow: c.RollingWindow,
		Seed:          c.Seed,
		Trees:         c.Trees,
		SampleSize:    c.SampleSize,
	}
	if err := cfg.Validate(); err != nil {
		return cleaning.Config{}, err
	}
	return cfg, nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Cleaning: CleaningConfig{
			Contamination: DefaultContamination,
			RollingWindow: DefaultRollingWindow,
			Seed:          DefaultSeed,
			Trees:         DefaultTrees,
			SampleSize:    DefaultSampleSize,
			Detector:      DefaultDetector,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			InputDir:  DefaultInputDir,
			OutputDir: DefaultOutputDir,
			LogsDir:   DefaultLogsDir,
		},
	}
}
