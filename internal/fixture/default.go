package fixture

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/adyen/uitests/internal/browser"
	"github.com/adyen/uitests/internal/config"
	"github.com/adyen/uitests/internal/database"
	"github.com/adyen/uitests/internal/driver"
	"github.com/adyen/uitests/internal/repository"
)

var (
	targetOnce sync.Once
	target     config.TargetConfig

	// defaultMu guards the default provider and its database
	defaultMu       sync.Mutex
	defaultBuilt    bool
	defaultProvider *Provider
	defaultDB       *sql.DB
	defaultErr      error
)

// BaseURL returns BASE_URL, or http://localhost:8081 when it is not set.
// The value is read once per process.
func BaseURL() string {
	return targetConfig().BaseURL
}

// URL joins path onto BaseURL
func URL(path string) string {
	return targetConfig().URL(path)
}

func targetConfig() config.TargetConfig {
	targetOnce.Do(func() {
		target = config.LoadTargetConfig(os.Getenv)
	})
	return target
}

// Driver returns a browser session from the environment-configured provider
func Driver(t testing.TB) Session {
	t.Helper()

	p, err := Default()
	if err != nil {
		t.Fatalf("browser fixture not configured: %v", err)
	}
	return p.Driver(t)
}

// Default returns the provider built from environment variables
func Default() (*Provider, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if !defaultBuilt {
		defaultProvider, defaultDB, defaultErr = NewProviderFromEnv(os.Getenv)
		defaultBuilt = true
	}
	return defaultProvider, defaultErr
}

// Close releases resources held by the default provider. It is safe to call
// more than once and concurrently with Default; TestMain calls it after m.Run.
func Close() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultDB == nil {
		return nil
	}
	err := defaultDB.Close()
	defaultDB = nil
	if defaultProvider != nil {
		defaultProvider.Recorder = nil
	}
	return err
}

// NewProviderFromEnv builds a provider launching real Chromium sessions. The
// returned database is nil unless run recording is enabled.
func NewProviderFromEnv(getenv func(string) string) (*Provider, *sql.DB, error) {
	browserConfig, err := config.LoadBrowserConfig(getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load browser config: %w", err)
	}

	resultsConfig, err := config.LoadResultsConfig(getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load results config: %w", err)
	}

	installer := driver.NewInstaller(false)
	p := &Provider{
		Browser:   browserConfig,
		Target:    config.LoadTargetConfig(getenv),
		Installer: installer,
		Launch: func(cfg config.BrowserConfig) (Session, error) {
			s, err := browser.Launch(cfg, installer.RunOptions())
			if err != nil {
				return nil, err
			}
			return s, nil
		},
	}

	if !resultsConfig.Enabled() {
		return p, nil, nil
	}

	db, err := database.Connect(resultsConfig.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to results database: %w", err)
	}
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Printf("Recording test runs to %s/%s", resultsConfig.Postgres.Host, resultsConfig.Postgres.Database)
	p.Recorder = repository.NewRunRepository(db)

	return p, db, nil
}
