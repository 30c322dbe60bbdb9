package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type simulationStats struct {
	runs          int
	runErrors     int
	matches       map[string]int
	drawAttempts  int
	drawFailures  int
	lastRunLength time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls and simulations.
// When telemetry is enabled the same events are forwarded to OpenTelemetry instruments.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	sim   simulationStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		sim:   simulationStats{matches: make(map[string]int)},
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordMatch counts one simulated match for the given stage.
func (r *Recorder) RecordMatch(stage string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.matches[stage]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordMatch(stage)
	}
}

// RecordDraw tracks how many attempts a bracket draw took and whether it gave up.
func (r *Recorder) RecordDraw(attempts int, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.drawAttempts += attempts
	if err != nil {
		r.sim.drawFailures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordDraw(attempts, err)
	}
}

// RecordTournament tracks a completed (or failed) tournament run.
func (r *Recorder) RecordTournament(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.runs++
	r.sim.lastRunLength = duration
	if err != nil {
		r.sim.runErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTournament(duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// SimulationSnapshot is a copy of the simulation counters.
type SimulationSnapshot struct {
	Runs          int
	RunErrors     int
	Matches       map[string]int
	DrawAttempts  int
	DrawFailures  int
	LastRunLength time.Duration
}

// Simulation returns a copy of the simulation counters.
func (r *Recorder) Simulation() SimulationSnapshot {
	if r == nil {
		return SimulationSnapshot{Matches: map[string]int{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := make(map[string]int, len(r.sim.matches))
	for k, v := range r.sim.matches {
		matches[k] = v
	}
	return SimulationSnapshot{
		Runs:          r.sim.runs,
		RunErrors:     r.sim.runErrors,
		Matches:       matches,
		DrawAttempts:  r.sim.drawAttempts,
		DrawFailures:  r.sim.drawFailures,
		LastRunLength: r.sim.lastRunLength,
	}
}
