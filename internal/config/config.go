package config

import (
	"errors"
	"io/fs"
	"slices"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server and the CLI.
type Config struct {
	Port       string
	Simulation SimulationConfig
	Roster     RosterConfig
	Store      StoreConfig
	Snapshots  SnapshotConfig
	Metrics    MetricsConfig
	Log        LogConfig
}

// SimulationConfig controls the engine defaults.
type SimulationConfig struct {
	// Seed is used for runs that do not pick one; 0 means a fresh random seed per run.
	Seed            uint64
	MaxDrawAttempts int
	// ScheduleInterval plays a tournament on every tick; 0 plays only the warm-up run.
	ScheduleInterval Duration
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port: envOrDefault(envPort, defaultPort),
		Simulation: SimulationConfig{
			Seed:             uint64EnvOrDefault(envSeed, 0),
			MaxDrawAttempts:  intEnvOrDefault(envDrawMaxAttempts, defaultDrawMaxAttempts),
			ScheduleInterval: durationEnvOrDefault(envScheduleInterval, 0),
		},
		Roster:    loadRoster(),
		Store:     loadStore(),
		Snapshots: loadSnapshots(),
		Metrics:   loadMetrics(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}
}

// LoadDotEnv loads KEY=value pairs from the given files (".env" when none are named) into the process
// environment without overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	paths = slices.DeleteFunc(paths, func(p string) bool { return p == "" })
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
