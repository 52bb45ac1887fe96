package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/adyen/uitests/internal/models"
)

// ErrRunNotFound is returned when no run matches the given ID
var ErrRunNotFound = errors.New("run not found")

// RunRepository handles database operations for test runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun inserts a run that has just started
func (r *RunRepository) CreateRun(run *models.Run) error {
	query := `
		INSERT INTO test_runs (id, test_name, base_url, status, started_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(query,
		run.ID,
		run.TestName,
		run.BaseURL,
		run.Status,
		run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// FinishRun stores the final status, screenshot and finish time of a run
func (r *RunRepository) FinishRun(run *models.Run) error {
	query := `
		UPDATE test_runs
		SET status = $1, screenshot_path = NULLIF($2, ''), finished_at = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(query, run.Status, run.ScreenshotPath, run.FinishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrRunNotFound
	}

	return nil
}

// GetRun retrieves a run by its ID
func (r *RunRepository) GetRun(id string) (*models.Run, error) {
	query := `
		SELECT id, test_name, base_url, status,
		       COALESCE(screenshot_path, ''), started_at, finished_at
		FROM test_runs
		WHERE id = $1
	`

	run := &models.Run{}
	var finishedAt sql.NullTime
	err := r.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.TestName,
		&run.BaseURL,
		&run.Status,
		&run.ScreenshotPath,
		&run.StartedAt,
		&finishedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}

	return run, nil
}

// ListRunsByStatus returns runs with the given status, most recent first
func (r *RunRepository) ListRunsByStatus(status models.RunStatus, limit int) ([]*models.Run, error) {
	query := `
		SELECT id, test_name, base_url, status,
		       COALESCE(screenshot_path, ''), started_at, finished_at
		FROM test_runs
		WHERE status = $1
		ORDER BY started_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run := &models.Run{}
		var finishedAt sql.NullTime
		if err := rows.Scan(
			&run.ID,
			&run.TestName,
			&run.BaseURL,
			&run.Status,
			&run.ScreenshotPath,
			&run.StartedAt,
			&finishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, nil
}
