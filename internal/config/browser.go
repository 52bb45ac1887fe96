package config

import (
	"fmt"
	"strconv"
	"time"
)

// Browser launch defaults
const (
	DefaultWindowWidth         = 1920
	DefaultWindowHeight        = 1080
	DefaultRemoteDebuggingPort = 9222
	DefaultImplicitWait        = 10 * time.Second
)

// BrowserConfig holds the launch configuration for a test browser session
type BrowserConfig struct {
	Headless            bool
	NoSandbox           bool
	DisableDevShmUsage  bool
	DisableGPU          bool
	WindowWidth         int
	WindowHeight        int
	RemoteDebuggingPort int
	ImplicitWait        time.Duration
}

// DefaultBrowserConfig returns the configuration used in CI: headless Chromium
// with a fixed 1920x1080 window and remote debugging on port 9222
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Headless:            true,
		NoSandbox:           true,
		DisableDevShmUsage:  true,
		DisableGPU:          true,
		WindowWidth:         DefaultWindowWidth,
		WindowHeight:        DefaultWindowHeight,
		RemoteDebuggingPort: DefaultRemoteDebuggingPort,
		ImplicitWait:        DefaultImplicitWait,
	}
}

// LoadBrowserConfig loads browser configuration from environment variables.
// Only HEADLESS is read; everything else is fixed.
func LoadBrowserConfig(getenv func(string) string) (BrowserConfig, error) {
	config := DefaultBrowserConfig()

	if v := getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return config, fmt.Errorf("HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	return config, nil
}

// Args returns the Chromium command line switches for this configuration
func (c BrowserConfig) Args() []string {
	var args []string
	if c.Headless {
		args = append(args, "--headless")
	}
	if c.NoSandbox {
		args = append(args, "--no-sandbox")
	}
	if c.DisableDevShmUsage {
		args = append(args, "--disable-dev-shm-usage")
	}
	if c.DisableGPU {
		args = append(args, "--disable-gpu")
	}
	if c.WindowWidth > 0 && c.WindowHeight > 0 {
		args = append(args, fmt.Sprintf("--window-size=%d,%d", c.WindowWidth, c.WindowHeight))
	}
	if c.RemoteDebuggingPort > 0 {
		args = append(args, fmt.Sprintf("--remote-debugging-port=%d", c.RemoteDebuggingPort))
	}
	return args
}

// ImplicitWaitMillis returns the implicit wait in milliseconds, the unit
// playwright timeouts are expressed in
func (c BrowserConfig) ImplicitWaitMillis() float64 {
	return float64(c.ImplicitWait.Milliseconds())
}
