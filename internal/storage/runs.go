package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeClear    Outcome = "clear"
	OutcomeGameOver Outcome = "game_over"
	OutcomeQuit     Outcome = "quit"
)

// Run is one finished attempt at a stage.
type Run struct {
	ID        int64
	RunID     string // UUID assigned on save
	Stage     string
	Score     int
	Wave      int
	Outcome   Outcome
	Ticks     int
	CreatedAt time.Time
}

// StageStats aggregates the runs of one stage.
type StageStats struct {
	Stage      string
	Runs       int
	Clears     int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

const runColumns = `id, run_id, stage, score, wave, outcome, ticks, created_at`

// SaveRun records a finished run and returns its run ID. A run without a
// RunID is assigned a fresh UUID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	if r.Outcome == "" {
		r.Outcome = OutcomeQuit
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, stage, score, wave, outcome, ticks) VALUES (?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Stage, r.Score, max(r.Wave, 1), string(r.Outcome), r.Ticks,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.RunID, nil
}

// TopRuns retrieves the best runs for a stage ordered by score descending.
// An empty stage ranks runs across every stage.
func (s *Store) TopRuns(stage string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	if stage == "" {
		return s.queryRuns(
			`SELECT `+runColumns+` FROM runs ORDER BY score DESC, id ASC LIMIT ?`,
			limit,
		)
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE stage = ? ORDER BY score DESC, id ASC LIMIT ?`,
		stage, limit,
	)
}

// RecentRuns retrieves the most recently saved runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// RunByID retrieves a run by its run ID. It returns nil if no run matches.
func (s *Store) RunByID(runID string) (*Run, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// HighScore returns the highest score for a stage. Returns 0 if no runs exist.
func (s *Store) HighScore(stage string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE stage = ?", stage).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes every run of a stage. An empty stage deletes all runs.
func (s *Store) ClearRuns(stage string) error {
	var err error
	if stage == "" {
		_, err = s.db.Exec("DELETE FROM runs")
	} else {
		_, err = s.db.Exec("DELETE FROM runs WHERE stage = ?", stage)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for one stage.
func (s *Store) Stats(stage string) (*StageStats, error) {
	stats := &StageStats{Stage: stage}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(outcome = 'clear'), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), MAX(created_at)
		 FROM runs WHERE stage = ?`,
		stage,
	).Scan(&stats.Runs, &stats.Clears, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get stage stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats retrieves statistics for every stage that has been played.
func (s *Store) AllStats() (map[string]*StageStats, error) {
	rows, err := s.db.Query(
		`SELECT stage, COUNT(*), SUM(outcome = 'clear'), MAX(score), AVG(score), MAX(created_at)
		 FROM runs
		 GROUP BY stage`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stage stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*StageStats)
	for rows.Next() {
		var st StageStats
		var lastPlayed any
		if err := rows.Scan(&st.Stage, &st.Runs, &st.Clears, &st.HighScore, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Stage] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var outcome string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Stage, &r.Score, &r.Wave, &outcome, &r.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
