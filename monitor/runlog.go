package monitor

import (
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// schema.sql defines the runs and run_cycles tables the recorder
// writes.
//
//go:embed schema.sql
var schemaSQL string

// CycleRecord is one recorded filter cycle.
type CycleRecord struct {
	Cycle         int
	Particles     int
	TotalWeight   float64
	MaxWeight     float64
	EffectiveSize float64
	EstX          float64
	EstY          float64
	EstTheta      float64
	CovTrace      float64
	PredictNs     int64
	CorrectNs     int64
	ResampleNs    int64
}

// RunLog records per-cycle filter metrics in a sqlite file so runs can
// be compared and replayed offline.
type RunLog struct {
	*sql.DB
}

// NewRunLog opens (or creates) the database at path and applies the
// schema.
func NewRunLog(path string) (*RunLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply run log schema: %w", err)
	}
	Logf("initialized run log at %s", path)
	return &RunLog{db}, nil
}

// Begin creates a new run and returns its identifier.
func (rl *RunLog) Begin(notes string) (string, error) {
	runID := "run_" + uuid.NewString()
	if _, err := rl.Exec(`INSERT INTO runs (id, notes) VALUES (?, ?)`, runID, notes); err != nil {
		return "", fmt.Errorf("failed to begin run: %w", err)
	}
	return runID, nil
}

// RecordCycle inserts one cycle row for the run.
func (rl *RunLog) RecordCycle(runID string, rec CycleRecord) error {
	query := `
		INSERT INTO run_cycles (
			run_id, cycle, particles, total_weight, max_weight, effective_size,
			est_x, est_y, est_theta, cov_trace, predict_ns, correct_ns, resample_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := rl.Exec(query,
		runID, rec.Cycle, rec.Particles, rec.TotalWeight, rec.MaxWeight, rec.EffectiveSize,
		rec.EstX, rec.EstY, rec.EstTheta, rec.CovTrace, rec.PredictNs, rec.CorrectNs, rec.ResampleNs)
	if err != nil {
		return fmt.Errorf("failed to record cycle %d: %w", rec.Cycle, err)
	}
	return nil
}

// Cycles returns the recorded cycles of a run in order.
func (rl *RunLog) Cycles(runID string) ([]CycleRecord, error) {
	query := `
		SELECT cycle, particles, total_weight, max_weight, effective_size,
			est_x, est_y, est_theta, cov_trace, predict_ns, correct_ns, resample_ns
		FROM run_cycles WHERE run_id = ? ORDER BY cycle
	`
	rows, err := rl.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycles: %w", err)
	}
	defer rows.Close()

	var records []CycleRecord
	for rows.Next() {
		var rec CycleRecord
		err := rows.Scan(&rec.Cycle, &rec.Particles, &rec.TotalWeight, &rec.MaxWeight, &rec.EffectiveSize,
			&rec.EstX, &rec.EstY, &rec.EstTheta, &rec.CovTrace, &rec.PredictNs, &rec.CorrectNs, &rec.ResampleNs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cycle row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
