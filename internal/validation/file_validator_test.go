package validation

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTempFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("Total Sales,Date\n"), 0644))
	return path
}

func TestNewFileValidator_NilLogger(t *testing.T) {
	v := NewFileValidator(nil)
	require.NotNil(t, v)

	dir := t.TempDir()
	path := writeTempFile(t, dir, "sales.csv")
	assert.NoError(t, v.ValidateInputFile(path))
}

func TestFileValidator_ValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	v := NewFileValidator(discardLogger())

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{
			name: "valid CSV file",
			path: writeTempFile(t, dir, "sales.csv"),
		},
		{
			name: "valid XLSX file",
			path: writeTempFile(t, dir, "sales.xlsx"),
		},
		{
			name: "uppercase extension accepted",
			path: writeTempFile(t, dir, "SALES.CSV"),
		},
		{
			name:    "missing file",
			path:    filepath.Join(dir, "missing.csv"),
			wantErr: "does not exist",
		},
		{
			name:    "directory instead of file",
			path:    dir,
			wantErr: "is a directory",
		},
		{
			name:    "unsupported extension",
			path:    writeTempFile(t, dir, "sales.txt"),
			wantErr: "unsupported extension",
		},
		{
			name:    "excel lock file",
			path:    writeTempFile(t, dir, "~$sales.xlsx"),
			wantErr: "lock file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateInputFile(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(discardLogger())

	t.Run("creates nested directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out", "reports")
		require.NoError(t, v.ValidateOutputDirectory(dir))

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("existing directory passes", func(t *testing.T) {
		dir := t.TempDir()
		assert.NoError(t, v.ValidateOutputDirectory(dir))
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		assert.NoError(t, v.ValidateOutputDirectory(""))
	})

	t.Run("probe file is removed", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, v.ValidateOutputDirectory(dir))

		_, err := os.Stat(filepath.Join(dir, ".write_probe"))
		assert.True(t, os.IsNotExist(err))
	})
}
