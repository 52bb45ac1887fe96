package cli

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/adyen/uitests/internal/config"
)

// ProbeSession is the part of a browser session the probe needs
type ProbeSession interface {
	Navigate(url string) (int, error)
	Title() (string, error)
	Quit() error
}

// ProbeDependencies holds everything RunProbe needs
type ProbeDependencies struct {
	Browser config.BrowserConfig
	Target  config.TargetConfig
	Install func() error
	Launch  func(cfg config.BrowserConfig) (ProbeSession, error)
}

// RunProbe opens one browser session against the base URL and writes the
// response status and page title to out. The session is always quit.
func RunProbe(deps ProbeDependencies, out io.Writer) (err error) {
	if err := deps.Install(); err != nil {
		return err
	}

	s, err := deps.Launch(deps.Browser)
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	defer func() {
		if qerr := s.Quit(); qerr != nil {
			log.Printf("Failed to quit browser session: %v", qerr)
			if err == nil {
				err = fmt.Errorf("failed to quit browser session: %w", qerr)
			}
		}
	}()

	url := deps.Target.BaseURL
	status, err := s.Navigate(url)
	if err != nil {
		return err
	}
	if status >= http.StatusBadRequest {
		return fmt.Errorf("%s returned HTTP %d", url, status)
	}

	title, err := s.Title()
	if err != nil {
		return fmt.Errorf("failed to read page title: %w", err)
	}

	fmt.Fprintf(out, "%s\t%d\t%q\n", url, status, title)
	return nil
}
