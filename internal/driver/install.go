// Package driver resolves and installs the browser-automation driver and
// the Chromium build it controls.
package driver

import (
	"fmt"
	"log"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// DefaultBrowsers are installed when an Installer is created without any
var DefaultBrowsers = []string{"chromium"}

// InstallFunc performs the actual download; it matches playwright.Install
type InstallFunc func(options ...*playwright.RunOptions) error

// Installer installs the driver at most once per process
type Installer struct {
	browsers []string
	verbose  bool
	install  InstallFunc

	once sync.Once
	err  error
}

// NewInstaller creates an installer backed by playwright.Install
func NewInstaller(verbose bool, browsers ...string) *Installer {
	return NewInstallerWithFunc(playwright.Install, verbose, browsers...)
}

// NewInstallerWithFunc creates an installer with a specific install function
func NewInstallerWithFunc(install InstallFunc, verbose bool, browsers ...string) *Installer {
	if len(browsers) == 0 {
		browsers = DefaultBrowsers
	}
	return &Installer{
		browsers: browsers,
		verbose:  verbose,
		install:  install,
	}
}

// Install downloads the driver and browsers if they are missing. Only the
// first call does any work; later calls return the first call's error.
func (i *Installer) Install() error {
	i.once.Do(func() {
		log.Printf("Installing browser driver for %v", i.browsers)
		err := i.install(i.RunOptions())
		if err != nil {
			i.err = fmt.Errorf("failed to install browser driver: %w", err)
			return
		}
		log.Println("Browser driver installed")
	})
	return i.err
}

// RunOptions returns the options shared by install and run so that both
// resolve the same driver directory and browser set
func (i *Installer) RunOptions() *playwright.RunOptions {
	return &playwright.RunOptions{
		Browsers: i.browsers,
		Verbose:  i.verbose,
	}
}
