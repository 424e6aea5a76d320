package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveInput places a relative file name under the input directory.
// Absolute paths pass through untouched.
func (p PathsConfig) ResolveInput(name string) string {
	if filepath.IsAbs(name) || p.InputDir == "" {
		return name
	}
	return filepath.Join(p.InputDir, name)
}

// ResolveOutput places a relative file name under the output directory
func (p PathsConfig) ResolveOutput(name string) string {
	if filepath.IsAbs(name) || p.OutputDir == "" {
		return name
	}
	return filepath.Join(p.OutputDir, name)
}

// EnsureDirectories creates the output and logs directories if missing
func (p PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
