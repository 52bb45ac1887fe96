package config

import (
	"strings"
	"testing"
)

func TestLoadResultsConfig(t *testing.T) {
	pgEnv := map[string]string{
		"RESULTS_DATABASE":  "postgres",
		"POSTGRES_USER":     "jenkins",
		"POSTGRES_PASSWORD": "secret",
		"POSTGRES_DB":       "uitests",
		"POSTGRES_HOSTNAME": "db",
	}

	tests := []struct {
		name        string
		env         map[string]string
		wantEnabled bool
		wantErr     bool
	}{
		{
			name:        "disabled by default",
			env:         map[string]string{},
			wantEnabled: false,
		},
		{
			name:        "postgres",
			env:         pgEnv,
			wantEnabled: true,
		},
		{
			name:    "postgres missing host",
			env:     map[string]string{"RESULTS_DATABASE": "postgres", "POSTGRES_USER": "u", "POSTGRES_DB": "d"},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"RESULTS_DATABASE": "mysql"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadResultsConfig(envMap(tt.env))

			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadResultsConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if cfg.Enabled() != tt.wantEnabled {
				t.Errorf("expected Enabled() %v, got %v", tt.wantEnabled, cfg.Enabled())
			}
		})
	}
}

func TestPostgresConfig_ConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		contains []string
		excludes []string
	}{
		{
			name: "defaults applied",
			env: map[string]string{
				"POSTGRES_USER":     "jenkins",
				"POSTGRES_PASSWORD": "secret",
				"POSTGRES_DB":       "uitests",
				"POSTGRES_HOSTNAME": "db",
			},
			contains: []string{"host=db", "port=5432", "user=jenkins", "dbname=uitests", "sslmode=disable", "password=secret"},
		},
		{
			name: "no password",
			env: map[string]string{
				"POSTGRES_USER":     "jenkins",
				"POSTGRES_DB":       "uitests",
				"POSTGRES_HOSTNAME": "db",
				"POSTGRES_PORT":     "6543",
				"POSTGRES_SSLMODE":  "require",
			},
			contains: []string{"port=6543", "sslmode=require"},
			excludes: []string{"password="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadPostgresConfig(envMap(tt.env))
			if err != nil {
				t.Fatalf("LoadPostgresConfig() error = %v", err)
			}

			connStr := cfg.ConnectionString()
			for _, s := range tt.contains {
				if !strings.Contains(connStr, s) {
					t.Errorf("expected connection string to contain '%s', got '%s'", s, connStr)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(connStr, s) {
					t.Errorf("expected connection string not to contain '%s', got '%s'", s, connStr)
				}
			}
		})
	}
}
