package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
)

func simpleRun(id string) tournament.Result {
	return tournament.Result{
		ID:        id,
		Seed:      1,
		CreatedAt: time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC),
		Medals:    tournament.Medals{Determined: true, Gold: "United States", Silver: "France", Bronze: "Serbia"},
	}
}

func writeRun(t *testing.T, w *Writer, id string) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for run %s", id)
	}
	if err := w.WriteRun(simpleRun(id)); err != nil {
		t.Fatalf("failed to write run %s: %v", id, err)
	}
}

func requireRunExists(t *testing.T, w *Writer, id string) {
	t.Helper()
	if _, err := os.Stat(RunSnapshotPath(w.BasePath(), id)); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", id, err)
	}
}

func assertIDsEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ids length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("ids mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
