package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/renzora/assetcore/internal/config"
)

// NewTestConfig returns a minimal valid config for testing, rooted at a
// fresh temporary projects directory.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Server.ProjectsDir = t.TempDir()
	return cfg
}

// TempDir creates a temporary directory for test data.
func TempDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// WriteFile writes content to a file in the given directory, creating any
// missing parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

// WriteBytes writes raw bytes to a file in the given directory, creating any
// missing parent directories. Useful for fixture binary payloads (fake PNGs,
// GLBs) that don't need to round-trip as text.
func WriteBytes(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

// NewProject creates a project directory named name under a fresh temporary
// projects directory and returns the projects dir root.
func NewProject(t *testing.T, name string) string {
	t.Helper()
	projectsDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(projectsDir, name), 0o755); err != nil {
		t.Fatalf("failed to create project directory: %v", err)
	}
	return projectsDir
}
