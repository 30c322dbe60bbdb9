package config

// StoreConfig selects the result store.
type StoreConfig struct {
	Driver     string
	SQLitePath string
	// Retention caps the runs the memory store keeps.
	Retention int
}

func loadStore() StoreConfig {
	return StoreConfig{
		Driver:     envOrDefault(envResultStore, defaultResultStore),
		SQLitePath: envOrDefault(envSQLitePath, defaultSQLitePath),
		Retention:  intEnvOrDefault(envStoreRetention, defaultStoreRetention),
	}
}
