package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
)

// Store defines how run snapshots are loaded.
type Store interface {
	LoadRun(id string) (tournament.Result, error)
	RunIDs() ([]string, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadRun reads the snapshot for a run from {basePath}/runs/{id}.json.
// A missing file is reported as tournament.ErrNotFound.
func (s *FSStore) LoadRun(id string) (tournament.Result, error) {
	if s == nil {
		return tournament.Result{}, errors.New("snapshot store not configured")
	}
	if err := validateRunID(id); err != nil {
		return tournament.Result{}, err
	}

	var payload tournament.Result
	if err := s.decodeFile(RunSnapshotPath(s.basePath, id), &payload); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tournament.Result{}, fmt.Errorf("%w: %s", tournament.ErrNotFound, id)
		}
		return tournament.Result{}, err
	}
	if payload.ID == "" {
		payload.ID = id
	}
	return payload, nil
}

// RunIDs lists retained runs, oldest first, as recorded in the manifest.
func (s *FSStore) RunIDs() ([]string, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	m, err := readManifest(ManifestPath(s.basePath), 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	return m.Runs.IDs, nil
}

func (s *FSStore) decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
