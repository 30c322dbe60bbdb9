package config

// RosterConfig selects where teams and exhibition history come from.
type RosterConfig struct {
	Source          string
	GroupsPath      string
	ExhibitionsPath string
	RetryAttempts   int
	RetryBackoff    Duration
}

func loadRoster() RosterConfig {
	return RosterConfig{
		Source:          envOrDefault(envRosterSource, defaultRosterSource),
		GroupsPath:      envOrDefault(envGroupsPath, defaultGroupsPath),
		ExhibitionsPath: envOrDefault(envExhibitionsPath, defaultExhibitionsPath),
		RetryAttempts:   intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
		RetryBackoff:    durationEnvOrDefault(envRetryBackoff, defaultRetryBackoff),
	}
}
