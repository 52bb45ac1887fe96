package config

import "fmt"

// ResultsConfig selects where test run results are recorded
type ResultsConfig struct {
	// Backend is empty when recording is disabled
	Backend  string
	Postgres *PostgresConfig
}

// Enabled reports whether run recording is configured
func (c ResultsConfig) Enabled() bool {
	return c.Backend != ""
}

// LoadResultsConfig loads run recording configuration from environment variables
func LoadResultsConfig(getenv func(string) string) (ResultsConfig, error) {
	backend := getenv("RESULTS_DATABASE")
	switch backend {
	case "":
		return ResultsConfig{}, nil
	case "postgres":
		pgConfig, err := LoadPostgresConfig(getenv)
		if err != nil {
			return ResultsConfig{}, err
		}
		return ResultsConfig{Backend: backend, Postgres: pgConfig}, nil
	default:
		return ResultsConfig{}, fmt.Errorf("unsupported RESULTS_DATABASE %q", backend)
	}
}
