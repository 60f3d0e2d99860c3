// Package testutil provides helper functions for testing.
package testutil

import (
	"archive/zip"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// TempDir creates a temporary directory and registers a cleanup function.
// The directory is automatically deleted when the test completes.
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Errorf("failed to cleanup temp dir %s: %v", dir, err)
		}
	})

	return dir
}

// BuildZip returns an in-memory zip archive holding files (slash-separated
// name -> content). Names ending in "/" become directory entries.
func BuildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		hdr := &zip.FileHeader{Name: name, Method: zip.Deflate}
		if strings.HasSuffix(name, "/") {
			hdr.SetMode(fs.ModeDir | 0o755)
		} else {
			hdr.SetMode(0o644)
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("failed to add %s to zip: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("failed to write %s to zip: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	return buf.Bytes()
}

// BundleArchive builds a zip laid out like a GitLab repository archive:
// everything under a single "<folder>/" root.
func BundleArchive(t *testing.T, folder string) []byte {
	t.Helper()

	return BuildZip(t, map[string]string{
		folder + "/":                                "",
		folder + "/pack.mcmeta":                     `{"pack":{"pack_format":15,"description":"test"}}`,
		folder + "/assets/minecraft/textures/a.png": "png-bytes",
	})
}

// MkdirAll creates dir/rel and fails the test on error.
func MkdirAll(t *testing.T, dir, rel string) string {
	t.Helper()

	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	return path
}

// WriteFile writes content to dir/rel, creating parents, and fails the test on error.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ListNames returns the sorted entry names of dir.
func ListNames(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
