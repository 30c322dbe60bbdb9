package config

// SnapshotConfig controls on-disk run snapshots.
type SnapshotConfig struct {
	Enabled   bool
	Dir       string
	Retention int // number of runs kept
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Enabled:   boolEnvOrDefault(envSnapshotsOn, defaultSnapshotsOn),
		Dir:       envOrDefault(envSnapshotDir, defaultSnapshotDir),
		Retention: intEnvOrDefault(envSnapshotKeep, defaultSnapshotKeep),
	}
}
