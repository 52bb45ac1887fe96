package database

import (
	"database/sql"
	"fmt"
)

// Schema creates the tables the run recorder writes to
const Schema = `
CREATE TABLE IF NOT EXISTS test_runs (
	id UUID PRIMARY KEY,
	test_name VARCHAR(1024) NOT NULL,
	base_url VARCHAR(2048) NOT NULL,
	status VARCHAR(20) NOT NULL,
	screenshot_path VARCHAR(4096),
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_test_runs_test_name ON test_runs(test_name);
CREATE INDEX IF NOT EXISTS idx_test_runs_status ON test_runs(status);
`

// RunMigrations creates the necessary database tables
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create test_runs table: %w", err)
	}

	return nil
}
