package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
)

// DefaultRetention is how many run snapshots are kept when none is configured.
const DefaultRetention = 50

// ErrInvalidRunID is returned for IDs that cannot be used as a file name.
var ErrInvalidRunID = errors.New("invalid run id")

// Writer persists run snapshots and the manifest, pruning the oldest runs past retention.
type Writer struct {
	basePath  string
	retention int
	now       func() time.Time

	mu sync.Mutex
}

// NewWriter constructs a writer rooted at basePath keeping at most retention runs.
func NewWriter(basePath string, retention int) *Writer {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Writer{
		basePath:  basePath,
		retention: retention,
		now:       time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteRun writes the snapshot for a finished run and updates the manifest.
func (w *Writer) WriteRun(result tournament.Result) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if err := validateRunID(result.ID); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	target := RunSnapshotPath(w.basePath, result.ID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(result.ID)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	return w.updateManifest(result.ID)
}

func (w *Writer) updateManifest(id string) error {
	m, _ := readManifest(ManifestPath(w.basePath), w.retention)

	onDisk, err := w.listRunIDs()
	if err != nil {
		return err
	}
	ids := mergeRunIDs(m.Runs.IDs, onDisk)
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	}
	ids = append(ids, id)

	m.Runs.IDs = w.pruneOldRuns(ids)
	m.Runs.LastWritten = w.now().UTC()
	m.Retention.Runs = w.retention
	return writeManifest(w.basePath, m)
}

// mergeRunIDs keeps the manifest order for known runs that still exist and appends any
// unlisted files found on disk.
func mergeRunIDs(listed, onDisk []string) []string {
	present := make(map[string]bool, len(onDisk))
	for _, id := range onDisk {
		present[id] = true
	}
	out := make([]string, 0, len(onDisk))
	seen := make(map[string]bool, len(onDisk))
	for _, id := range listed {
		if present[id] && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	for _, id := range onDisk {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

func (w *Writer) listRunIDs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, runsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (w *Writer) pruneOldRuns(ids []string) []string {
	if len(ids) <= w.retention {
		return ids
	}
	drop := len(ids) - w.retention
	for _, id := range ids[:drop] {
		_ = os.Remove(RunSnapshotPath(w.basePath, id))
	}
	return slices.Clone(ids[drop:])
}

func validateRunID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidRunID, id)
	}
	return nil
}
