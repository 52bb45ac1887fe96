package config

// ServerConfig holds configuration for the stub target server
type ServerConfig struct {
	Port  string
	Title string
}

// LoadServerConfig loads stub server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8081" // Same port as DefaultBaseURL
	}

	title := getenv("STUB_TITLE")
	if title == "" {
		title = "UI Test Target"
	}

	return ServerConfig{
		Port:  port,
		Title: title,
	}
}
