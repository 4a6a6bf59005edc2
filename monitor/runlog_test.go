package monitor

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTestRunLog(t *testing.T) *RunLog {
	t.Helper()
	rl, err := NewRunLog(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("NewRunLog: %v", err)
	}
	t.Cleanup(func() { rl.Close() })
	return rl
}

func TestRunLogRoundTrip(t *testing.T) {
	rl := openTestRunLog(t)

	runID, err := rl.Begin("unit test run")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if !strings.HasPrefix(runID, "run_") {
		t.Errorf("expected run_ prefix, got %q", runID)
	}

	want := []CycleRecord{
		{Cycle: 0, Particles: 500, TotalWeight: 512.25, MaxWeight: 4.2, EffectiveSize: 488.1,
			EstX: 1.01, EstY: 0.98, EstTheta: 0.02, CovTrace: 0.74,
			PredictNs: 120_000, CorrectNs: 3_400_000, ResampleNs: 90_000},
		{Cycle: 1, Particles: 500, TotalWeight: 750.0, MaxWeight: 4.2, EffectiveSize: 430.5,
			EstX: 1.00, EstY: 1.00, EstTheta: 0.01, CovTrace: 0.31,
			PredictNs: 118_000, CorrectNs: 3_100_000, ResampleNs: 88_000},
		{Cycle: 2, Particles: 350, TotalWeight: 640.7, MaxWeight: 4.1, EffectiveSize: 341.0,
			EstX: 0.99, EstY: 1.02, EstTheta: -0.01, CovTrace: 0.12,
			PredictNs: 90_000, CorrectNs: 2_200_000, ResampleNs: 71_000},
	}
	for _, rec := range want {
		if err := rl.RecordCycle(runID, rec); err != nil {
			t.Fatalf("RecordCycle %d: %v", rec.Cycle, err)
		}
	}

	got, err := rl.Cycles(runID)
	if err != nil {
		t.Fatalf("Cycles: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("recorded cycles differ (-want +got):\n%s", diff)
	}
}

func TestRunLogIsolatesRuns(t *testing.T) {
	rl := openTestRunLog(t)

	first, err := rl.Begin("first")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	second, err := rl.Begin("second")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if first == second {
		t.Fatalf("run identifiers must be unique, got %q twice", first)
	}

	if err := rl.RecordCycle(first, CycleRecord{Cycle: 0, Particles: 10}); err != nil {
		t.Fatalf("RecordCycle: %v", err)
	}

	got, err := rl.Cycles(second)
	if err != nil {
		t.Fatalf("Cycles: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no cycles for the second run, got %d", len(got))
	}
}

func TestRunLogDuplicateCycleFails(t *testing.T) {
	rl := openTestRunLog(t)

	runID, err := rl.Begin("dup")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := rl.RecordCycle(runID, CycleRecord{Cycle: 3}); err != nil {
		t.Fatalf("RecordCycle: %v", err)
	}
	if err := rl.RecordCycle(runID, CycleRecord{Cycle: 3}); err == nil {
		t.Error("recording the same cycle twice should fail")
	}
}
