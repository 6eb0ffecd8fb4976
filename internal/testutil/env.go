// Package testutil provides utilities for testing zedfetch in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// InTempDir switches the working directory to a fresh temporary directory
// for the rest of the test and returns its path. Extracted assets land in the
// working directory, so tests must never run against the checkout.
//
// The previous working directory is restored by t.Chdir on cleanup.
func InTempDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	return dir
}

// ReadTree returns the regular files below root keyed by slash-separated
// relative path.
func ReadTree(t *testing.T, root string) map[string]string {
	t.Helper()

	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read tree %s: %v", root, err)
	}

	return files
}
