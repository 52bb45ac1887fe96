package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/adyen/uitests/internal/browser"
	internalcli "github.com/adyen/uitests/internal/cli"
	"github.com/adyen/uitests/internal/config"
	"github.com/adyen/uitests/internal/driver"
	"github.com/adyen/uitests/internal/handlers"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Download the browser driver and Chromium",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "show download progress"},
		},
		Action: func(c *cli.Context) error {
			return driver.NewInstaller(c.Bool("verbose")).Install()
		},
	}
}

// ProbeCommand returns the probe command
func ProbeCommand() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "Open the application under test in a headless browser and report its title",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Usage: "override BASE_URL", EnvVars: []string{"BASE_URL"}},
		},
		Action: func(c *cli.Context) error {
			deps, err := buildProbeDependencies(c.String("base-url"))
			if err != nil {
				return err
			}
			return internalcli.RunProbe(deps, c.App.Writer)
		},
	}
}

// StubCommand returns the stub command
func StubCommand() *cli.Command {
	return &cli.Command{
		Name:  "stub",
		Usage: "Serve a placeholder page at the default base URL",
		Action: func(c *cli.Context) error {
			serverConfig := config.LoadServerConfig(os.Getenv)

			pageHandler, err := handlers.NewStubHandler(serverConfig.Title)
			if err != nil {
				return fmt.Errorf("failed to create stub handler: %w", err)
			}

			return internalcli.RunServe(internalcli.ServerDependencies{
				ServerConfig:  serverConfig,
				PageHandler:   pageHandler,
				HealthHandler: http.HandlerFunc(handlers.HealthHandler),
			})
		},
	}
}

// buildProbeDependencies wires the probe to a real browser
func buildProbeDependencies(baseURL string) (internalcli.ProbeDependencies, error) {
	var deps internalcli.ProbeDependencies

	browserConfig, err := config.LoadBrowserConfig(os.Getenv)
	if err != nil {
		return deps, err
	}
	deps.Browser = browserConfig

	deps.Target = config.LoadTargetConfig(func(key string) string {
		if key == "BASE_URL" && baseURL != "" {
			return baseURL
		}
		return os.Getenv(key)
	})

	installer := driver.NewInstaller(false)
	deps.Install = installer.Install
	deps.Launch = func(cfg config.BrowserConfig) (internalcli.ProbeSession, error) {
		s, err := browser.Launch(cfg, installer.RunOptions())
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	return deps, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "uitests",
		Usage:   "Browser UI test harness tooling",
		Version: version,
		Commands: []*cli.Command{
			InstallCommand(),
			ProbeCommand(),
			StubCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
