package snapshots

import (
	"fmt"
	"path/filepath"
)

const (
	runsDir      = "runs"
	manifestFile = "manifest.json"
)

// RunSnapshotPath builds the path to a run snapshot.
func RunSnapshotPath(basePath, id string) string {
	return filepath.Join(basePath, runsDir, fmt.Sprintf("%s.json", id))
}

// ManifestPath builds the path to the snapshot manifest.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
