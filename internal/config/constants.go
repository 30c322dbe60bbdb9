package config

import "time"

const (
	envPort             = "PORT"
	envSeed             = "SIM_SEED"
	envDrawMaxAttempts  = "DRAW_MAX_ATTEMPTS"
	envScheduleInterval = "SCHEDULE_INTERVAL"
	envRosterSource     = "ROSTER_SOURCE"
	envGroupsPath       = "GROUPS_PATH"
	envExhibitionsPath  = "EXHIBITIONS_PATH"
	envRetryAttempts    = "PROVIDER_RETRY_ATTEMPTS"
	envRetryBackoff     = "PROVIDER_RETRY_BACKOFF"
	envResultStore      = "RESULT_STORE"
	envSQLitePath       = "SQLITE_PATH"
	envStoreRetention   = "STORE_RETENTION"
	envSnapshotsOn      = "SNAPSHOTS_ENABLED"
	envSnapshotDir      = "SNAPSHOT_DIR"
	envSnapshotKeep     = "SNAPSHOT_RETENTION"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"

	defaultPort            = "4000"
	defaultDrawMaxAttempts = 100
	defaultRosterSource    = RosterSourceFixture
	defaultGroupsPath      = "groups.json"
	// Matches the file name the roster data ships with.
	defaultExhibitionsPath = "exibitions.json"
	defaultRetryAttempts   = 3
	defaultRetryBackoff    = 200 * Duration(time.Millisecond)
	defaultResultStore     = StoreMemory
	defaultSQLitePath      = "data/tournaments.db"
	defaultStoreRetention  = 500
	defaultSnapshotsOn     = false
	defaultSnapshotDir     = "data/snapshots"
	defaultSnapshotKeep    = 50
	defaultMetricsPort     = "9090"
	defaultServiceName     = "tournament-sim"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
)

// Roster sources.
const (
	RosterSourceFixture = "fixture"
	RosterSourceFile    = "file"
)

// Result store drivers.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)
