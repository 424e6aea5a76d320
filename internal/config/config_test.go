package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesclean/internal/cleaning"
)

// chdirTemp moves the test into an empty directory so Load sees no
// stray config.yaml from the working tree.
func chdirTemp(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { os.Chdir(wd) })

	return tempDir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "0.1", cfg.Cleaning.Contamination)
	assert.Equal(t, 3, cfg.Cleaning.RollingWindow)
	assert.Equal(t, int64(42), cfg.Cleaning.Seed)
	assert.Equal(t, 100, cfg.Cleaning.Trees)
	assert.Equal(t, 256, cfg.Cleaning.SampleSize)
	assert.Equal(t, DetectorIsolationForest, cfg.Cleaning.Detector)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, DefaultLogFile, cfg.Logging.FilePath)
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)

	t.Setenv("SALES_CLEANING_CONTAMINATION", "auto")
	t.Setenv("SALES_CLEANING_ROLLING_WINDOW", "7")
	t.Setenv("SALES_CLEANING_DETECTOR", "robust-zscore")
	t.Setenv("SALES_LOGGING_LEVEL", "debug")
	t.Setenv("SALES_LOGGING_OUTPUT", "stdout")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Cleaning.Contamination)
	assert.Equal(t, 7, cfg.Cleaning.RollingWindow)
	assert.Equal(t, "robust-zscore", cfg.Cleaning.Detector)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)

	// Untouched fields keep their defaults
	assert.Equal(t, int64(42), cfg.Cleaning.Seed)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_FileLayer(t *testing.T) {
	chdirTemp(t)

	content := `cleaning:
  contamination: "0.25"
  rolling_window: 5
logging:
  level: warn
`
	require.NoError(t, os.WriteFile("config.yaml", []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.25", cfg.Cleaning.Contamination)
	assert.Equal(t, 5, cfg.Cleaning.RollingWindow)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Fields the file does not set fall back to defaults
	assert.Equal(t, 100, cfg.Cleaning.Trees)
	assert.Equal(t, "both", cfg.Logging.Output)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	chdirTemp(t)

	content := `cleaning:
  contamination: "0.25"
`
	require.NoError(t, os.WriteFile("config.yaml", []byte(content), 0644))
	t.Setenv("SALES_CLEANING_CONTAMINATION", "0.3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.3", cfg.Cleaning.Contamination)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "contamination above range", key: "SALES_CLEANING_CONTAMINATION", value: "0.75"},
		{name: "contamination below range", key: "SALES_CLEANING_CONTAMINATION", value: "0.005"},
		{name: "contamination not a number", key: "SALES_CLEANING_CONTAMINATION", value: "lots"},
		{name: "unknown detector", key: "SALES_CLEANING_DETECTOR", value: "lof"},
		{name: "unknown log level", key: "SALES_LOGGING_LEVEL", value: "verbose"},
		{name: "unknown log output", key: "SALES_LOGGING_OUTPUT", value: "syslog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.WriteFile("config.yaml", []byte("cleaning: ["), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from file")
}

func TestMergeConfigs(t *testing.T) {
	base := *Default()
	overlay := Config{}
	overlay.Cleaning.Contamination = "auto"
	overlay.Logging.Level = "error"

	merged := mergeConfigs(base, overlay)

	assert.Equal(t, "auto", merged.Cleaning.Contamination)
	assert.Equal(t, "error", merged.Logging.Level)
	assert.Equal(t, 3, merged.Cleaning.RollingWindow)
	assert.Equal(t, "json", merged.Logging.Format)
	assert.Equal(t, DefaultOutputDir, merged.Paths.OutputDir)
}

func TestToPipelineConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     CleaningConfig
		wantErr bool
		check   func(t *testing.T, got cleaning.Config)
	}{
		{
			name: "fixed fraction",
			cfg: CleaningConfig{
				Contamination: "0.2",
				RollingWindow: 3,
				Seed:          42,
				Trees:         100,
				SampleSize:    256,
			},
			check: func(t *testing.T, got cleaning.Config) {
				assert.False(t, got.Contamination.Auto)
				assert.Equal(t, 0.2, got.Contamination.Fraction)
				assert.Equal(t, int64(42), got.Seed)
			},
		},
		{
			name: "auto mode",
			cfg: CleaningConfig{
				Contamination: "auto",
				RollingWindow: 3,
				Seed:          7,
				Trees:         50,
				SampleSize:    128,
			},
			check: func(t *testing.T, got cleaning.Config) {
				assert.True(t, got.Contamination.Auto)
			},
		},
		{
			name: "contamination out of range",
			cfg: CleaningConfig{
				Contamination: "1.5",
				RollingWindow: 3,
				Seed:          42,
				Trees:         100,
				SampleSize:    256,
			},
			wantErr: true,
		},
		{
			name: "window too small",
			cfg: CleaningConfig{
				Contamination: "0.1",
				RollingWindow: 0,
				Seed:          42,
				Trees:         100,
				SampleSize:    256,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.ToPipelineConfig()

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestToPipelineConfig_ErrorType(t *testing.T) {
	cfg := CleaningConfig{
		Contamination: "0.9",
		RollingWindow: 3,
		Seed:          42,
		Trees:         100,
		SampleSize:    256,
	}

	_, err := cfg.ToPipelineConfig()
	require.Error(t, err)

	var contaminationErr *cleaning.InvalidContaminationError
	assert.True(t, errors.As(err, &contaminationErr))
}
