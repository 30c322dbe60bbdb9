package snapshots

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
)

func TestFSStoreLoadRun(t *testing.T) {
	dir := t.TempDir()
	writeRun(t, NewWriter(dir, 5), "run-7")

	got, err := NewFSStore(dir).LoadRun("run-7")
	if err != nil {
		t.Fatalf("failed to load run: %v", err)
	}
	if got.ID != "run-7" || got.Medals.Gold != "United States" {
		t.Fatalf("unexpected run snapshot: %+v", got)
	}
}

func TestFSStoreFillsMissingID(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "runs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(RunSnapshotPath(dir, "bare"), []byte(`{"seed":3}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := NewFSStore(dir).LoadRun("bare")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != "bare" || got.Seed != 3 {
		t.Fatalf("unexpected run %+v", got)
	}
}

func TestFSStoreErrors(t *testing.T) {
	store := NewFSStore(t.TempDir())
	if _, err := store.LoadRun("missing"); !errors.Is(err, tournament.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing run, got %v", err)
	}
	if _, err := store.LoadRun("../escape"); !errors.Is(err, ErrInvalidRunID) {
		t.Fatalf("expected ErrInvalidRunID, got %v", err)
	}
	ids, err := store.RunIDs()
	if err != nil || len(ids) != 0 {
		t.Fatalf("expected no ids without manifest, got %v %v", ids, err)
	}

	var nilStore *FSStore
	if _, err := nilStore.LoadRun("x"); err == nil {
		t.Fatalf("expected error for nil store")
	}
	if _, err := nilStore.RunIDs(); err == nil {
		t.Fatalf("expected error for nil store")
	}
}

func TestDecodeFileError(t *testing.T) {
	dir := t.TempDir()
	path := RunSnapshotPath(dir, "bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{bad json"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	store := NewFSStore(dir)
	if _, err := store.LoadRun("bad"); err == nil || errors.Is(err, tournament.ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestFSStoreRunIDsBadManifest(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(ManifestPath(dir), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFSStore(dir).RunIDs(); err == nil {
		t.Fatalf("expected manifest decode error")
	}
}
