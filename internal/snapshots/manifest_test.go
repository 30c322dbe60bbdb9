package snapshots

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadManifestReturnsDefaultOnDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	m, err := readManifest(path, 5)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if m.Retention.Runs != 5 || m.Runs.IDs == nil {
		t.Fatalf("expected default manifest, got %+v", m)
	}
}

func TestReadManifestFillsMissingIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte(`{"version":1}`), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	m, err := readManifest(path, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Runs.IDs == nil {
		t.Fatalf("expected non-nil ids")
	}
}

func TestWriteManifestFailsWhenPathMissing(t *testing.T) {
	if err := writeManifest(filepath.Join("does-not-exist", "missing"), defaultManifest(3)); err == nil {
		t.Fatalf("expected error when base path missing")
	}
}

func TestWriteManifestSuccess(t *testing.T) {
	dir := t.TempDir()
	m := defaultManifest(4)
	m.Runs.IDs = []string{"a"}
	if err := writeManifest(dir, m); err != nil {
		t.Fatalf("expected manifest to be written, got %v", err)
	}
	got, err := readManifest(ManifestPath(dir), 0)
	if err != nil {
		t.Fatalf("expected manifest file, got %v", err)
	}
	if got.Retention.Runs != 4 || len(got.Runs.IDs) != 1 {
		t.Fatalf("unexpected manifest %+v", got)
	}
}
