package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest tracks which run snapshots are retained, oldest first.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Retention   Retention `json:"retention"`
	Runs        RunsMeta  `json:"runs"`
}

type Retention struct {
	Runs int `json:"runs"`
}

type RunsMeta struct {
	IDs         []string  `json:"ids"`
	LastWritten time.Time `json:"lastWritten"`
}

func defaultManifest(retention int) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Retention:   Retention{Runs: retention},
		Runs:        RunsMeta{IDs: []string{}},
	}
}

func readManifest(path string, retention int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retention), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retention), err
	}
	if m.Runs.IDs == nil {
		m.Runs.IDs = []string{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	path := ManifestPath(basePath)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
