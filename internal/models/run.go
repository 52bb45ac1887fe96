package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the outcome of a single fixture session
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// Run records one browser session handed to one test function
type Run struct {
	ID             string
	TestName       string
	BaseURL        string
	Status         RunStatus
	ScreenshotPath string
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Domain errors
var (
	ErrInvalidTestName         = errors.New("test name cannot be empty")
	ErrInvalidBaseURL          = errors.New("base URL cannot be empty")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
)

// NewRun creates a run in the running state
func NewRun(testName, baseURL string) (*Run, error) {
	if testName == "" {
		return nil, ErrInvalidTestName
	}
	if baseURL == "" {
		return nil, ErrInvalidBaseURL
	}

	return &Run{
		ID:        uuid.New().String(),
		TestName:  testName,
		BaseURL:   baseURL,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// Pass marks the run as passed
func (r *Run) Pass() error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot pass run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusPassed
	r.FinishedAt = time.Now()
	return nil
}

// Fail marks the run as failed, keeping the failure screenshot if one was taken
func (r *Run) Fail(screenshotPath string) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot fail run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusFailed
	r.ScreenshotPath = screenshotPath
	r.FinishedAt = time.Now()
	return nil
}

// IsFinished returns true once the run has passed or failed
func (r *Run) IsFinished() bool {
	return r.Status == RunStatusPassed || r.Status == RunStatusFailed
}

// Duration returns how long the run took, or zero while it is still running
func (r *Run) Duration() time.Duration {
	if !r.IsFinished() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
