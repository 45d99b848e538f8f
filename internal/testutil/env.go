// Package testutil provides utilities for testing tfenv in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv points every TFENV_* variable at an isolated temp tree so
// tests never touch the user's real root, configuration or installed
// versions. It returns the temp directory; cleanup is handled by
// t.TempDir().
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	t.Setenv("TFENV_ROOT", filepath.Join(tmpDir, "root"))
	t.Setenv("TFENV_CONFIG_DIR", filepath.Join(tmpDir, "config"))

	// Blank out everything else so ambient shell state cannot leak in.
	t.Setenv("TFENV_PRODUCT", "")
	t.Setenv("TFENV_REMOTE", "")
	t.Setenv("TFENV_TERRAFORM_VERSION", "")
	t.Setenv("TFENV_AUTO_INSTALL", "")
	t.Setenv("TFENV_TRUST_TFENV", "")

	for _, dir := range []string{
		filepath.Join(tmpDir, "root"),
		filepath.Join(tmpDir, "config"),
	} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	return tmpDir
}
