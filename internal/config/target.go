package config

import "strings"

// DefaultBaseURL is the application under test when BASE_URL is not set
const DefaultBaseURL = "http://localhost:8081"

// TargetConfig describes the web application under test
type TargetConfig struct {
	BaseURL      string
	ArtifactsDir string
}

// LoadTargetConfig loads the target application configuration from environment variables
func LoadTargetConfig(getenv func(string) string) TargetConfig {
	baseURL := getenv("BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return TargetConfig{
		BaseURL:      baseURL,
		ArtifactsDir: getenv("ARTIFACTS_DIR"),
	}
}

// URL joins path onto the base URL. BaseURL is kept exactly as configured;
// slashes are only normalized at the join.
func (c TargetConfig) URL(path string) string {
	if path == "" {
		return c.BaseURL
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
