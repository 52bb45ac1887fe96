// Package browser launches and releases the headless Chromium sessions that
// UI tests drive.
package browser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adyen/uitests/internal/config"
	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

// Session is one browser with one page, owned by a single test
type Session struct {
	id   string
	page playwright.Page

	// releases run in reverse order on Quit
	releases []release

	quitOnce sync.Once
	quitErr  error
}

type release struct {
	name string
	fn   func() error
}

// step acquires one resource and returns the function that releases it
type step struct {
	name    string
	acquire func() (func() error, error)
}

// Launch starts the playwright driver, launches Chromium with cfg and opens a
// page sized to the configured window. Whatever was acquired before a failing
// step is released before the error is returned.
func Launch(cfg config.BrowserConfig, runOptions *playwright.RunOptions) (*Session, error) {
	s := &Session{id: uuid.New().String()}

	if err := s.acquire(s.launchSteps(cfg, runOptions)); err != nil {
		return nil, err
	}

	return s, nil
}

// acquire runs steps in order and registers each release. On the first
// failing step everything acquired so far is released and any release
// errors are joined to the step's error.
func (s *Session) acquire(steps []step) error {
	for _, st := range steps {
		fn, err := st.acquire()
		if err != nil {
			if qerr := s.Quit(); qerr != nil {
				err = errors.Join(err, qerr)
			}
			return err
		}
		s.onQuit(st.name, fn)
	}
	return nil
}

func (s *Session) launchSteps(cfg config.BrowserConfig, runOptions *playwright.RunOptions) []step {
	var opts []*playwright.RunOptions
	if runOptions != nil {
		opts = append(opts, runOptions)
	}

	var (
		pw   *playwright.Playwright
		b    playwright.Browser
		bctx playwright.BrowserContext
	)

	return []step{
		{
			name: "playwright driver",
			acquire: func() (func() error, error) {
				var err error
				pw, err = playwright.Run(opts...)
				if err != nil {
					return nil, fmt.Errorf("failed to start playwright driver: %w", err)
				}
				return pw.Stop, nil
			},
		},
		{
			name: "browser",
			acquire: func() (func() error, error) {
				var err error
				b, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
					Headless: playwright.Bool(cfg.Headless),
					Args:     cfg.Args(),
				})
				if err != nil {
					return nil, fmt.Errorf("failed to launch chromium: %w", err)
				}
				return func() error { return b.Close() }, nil
			},
		},
		{
			name: "browser context",
			acquire: func() (func() error, error) {
				var err error
				bctx, err = b.NewContext(playwright.BrowserNewContextOptions{
					Viewport: &playwright.Size{
						Width:  cfg.WindowWidth,
						Height: cfg.WindowHeight,
					},
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create browser context: %w", err)
				}
				return func() error { return bctx.Close() }, nil
			},
		},
		{
			name: "page",
			acquire: func() (func() error, error) {
				page, err := bctx.NewPage()
				if err != nil {
					return nil, fmt.Errorf("failed to open page: %w", err)
				}
				page.SetDefaultTimeout(cfg.ImplicitWaitMillis())
				s.page = page
				return func() error { return page.Close() }, nil
			},
		},
	}
}

func (s *Session) onQuit(name string, fn func() error) {
	s.releases = append(s.releases, release{name: name, fn: fn})
}

// ID identifies the session in logs, artifacts and recorded runs
func (s *Session) ID() string {
	return s.id
}

// Page returns the session's page
func (s *Session) Page() playwright.Page {
	return s.page
}

// Title returns the current document title
func (s *Session) Title() (string, error) {
	return s.page.Title()
}

// Navigate loads url and returns the HTTP status of the main document.
// Status is 0 when the navigation produced no response, e.g. same-document
// anchor navigation.
func (s *Session) Navigate(url string) (int, error) {
	resp, err := s.page.Goto(url)
	if err != nil {
		return 0, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if resp == nil {
		return 0, nil
	}
	return resp.Status(), nil
}

// Screenshot writes a full-page PNG to path, creating parent directories
func (s *Session) Screenshot(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to take screenshot: %w", err)
	}
	return nil
}

// Quit releases the page, context, browser and driver process. Every step
// is attempted; failures are joined. Calling Quit again returns the first
// result.
func (s *Session) Quit() error {
	s.quitOnce.Do(func() {
		var errs []error
		for i := len(s.releases) - 1; i >= 0; i-- {
			r := s.releases[i]
			if err := r.fn(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close %s: %w", r.name, err))
			}
		}
		s.releases = nil
		s.quitErr = errors.Join(errs...)
	})
	return s.quitErr
}
