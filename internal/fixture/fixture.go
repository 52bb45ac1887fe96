// Package fixture provides the per-test browser session and the base URL of
// the application under test.
//
// A UI test asks for a session with Driver(t). The session is launched before
// the call returns and quit when the test finishes, whatever the outcome:
//
//	func TestHomepage(t *testing.T) {
//		s := fixture.Driver(t)
//		if _, err := s.Navigate(fixture.BaseURL()); err != nil {
//			t.Fatal(err)
//		}
//	}
package fixture

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adyen/uitests/internal/browser"
	"github.com/adyen/uitests/internal/config"
	"github.com/adyen/uitests/internal/models"
	"github.com/playwright-community/playwright-go"
)

// Session is the browser handle a test drives
type Session interface {
	ID() string
	Page() playwright.Page
	Navigate(url string) (int, error)
	Screenshot(path string) error
	Quit() error
}

var _ Session = (*browser.Session)(nil)

// Installer makes the browser driver available before a launch
type Installer interface {
	Install() error
}

// LaunchFunc starts a new browser session
type LaunchFunc func(cfg config.BrowserConfig) (Session, error)

// RunRecorder persists one record per session
type RunRecorder interface {
	CreateRun(run *models.Run) error
	FinishRun(run *models.Run) error
}

// Provider hands out browser sessions to tests
type Provider struct {
	Browser   config.BrowserConfig
	Target    config.TargetConfig
	Installer Installer
	Launch    LaunchFunc

	// Recorder is optional
	Recorder RunRecorder
}

// Driver installs the driver if needed, launches a session and registers
// its release with t.Cleanup. Setup failures abort the test via t.Fatalf.
func (p *Provider) Driver(t testing.TB) Session {
	t.Helper()

	if p.Installer != nil {
		if err := p.Installer.Install(); err != nil {
			t.Fatalf("browser driver setup failed: %v", err)
		}
	}

	s, err := p.Launch(p.Browser)
	if err != nil {
		t.Fatalf("browser launch failed: %v", err)
	}

	run := p.startRun(t)
	t.Cleanup(func() {
		p.release(t, s, run)
	})

	return s
}

func (p *Provider) release(t testing.TB, s Session, run *models.Run) {
	var screenshot string
	if t.Failed() && p.Target.ArtifactsDir != "" {
		path := filepath.Join(p.Target.ArtifactsDir, ArtifactName(t.Name(), s.ID()))
		if err := s.Screenshot(path); err != nil {
			t.Logf("failed to capture screenshot: %v", err)
		} else {
			screenshot = path
			t.Logf("screenshot saved to %s", path)
		}
	}

	if err := s.Quit(); err != nil {
		t.Errorf("failed to quit browser session %s: %v", s.ID(), err)
	}

	p.finishRun(t, run, screenshot)
}

func (p *Provider) startRun(t testing.TB) *models.Run {
	if p.Recorder == nil {
		return nil
	}

	run, err := models.NewRun(t.Name(), p.Target.BaseURL)
	if err != nil {
		t.Logf("failed to record run: %v", err)
		return nil
	}
	if err := p.Recorder.CreateRun(run); err != nil {
		t.Logf("failed to record run: %v", err)
		return nil
	}
	return run
}

func (p *Provider) finishRun(t testing.TB, run *models.Run, screenshot string) {
	if run == nil {
		return
	}

	var err error
	if t.Failed() {
		err = run.Fail(screenshot)
	} else {
		err = run.Pass()
	}
	if err == nil {
		err = p.Recorder.FinishRun(run)
	}
	if err != nil {
		t.Logf("failed to record result of run %s: %v", run.ID, err)
	}
}

// ArtifactName builds a file name for a failure screenshot from a test name,
// which may contain subtest slashes and spaces
func ArtifactName(testName, sessionID string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, testName)
	return fmt.Sprintf("%s-%s.png", name, sessionID)
}
