package main

import (
	"bufio"
	_ "embed" // this is required in order for go:embed to work
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gdplabs/e2e-test-harness/config"
	"github.com/gdplabs/e2e-test-harness/e2etests"
	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/fixtures"
	"github.com/gdplabs/e2e-test-harness/framework"
	"github.com/gdplabs/e2e-test-harness/framework/e2etest"
)

//go:embed VERSION
var versionString string // comes from the VERSION file which we update for each release

func main() {
	fmt.Printf("e2e-test-harness v%s\n", strings.TrimSpace(versionString))

	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	results, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !results.OK() {
		ids := make([]e2etest.TestID, 0, len(results.Failures))
		for _, f := range results.Failures {
			ids = append(ids, f.TestID)
		}
		fmt.Fprintf(os.Stderr, "\nTo rerun the failed tests:\n  %s\n", rerunCommand(filepath.Base(os.Args[0]), params, ids))
		os.Exit(1)
	}
}

func run(params commandParams) (*e2etest.Results, error) {
	if params.skipFile != "" {
		if err := loadSuppressions(&params); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(params.configFile, params.envFile, nil)
	if err != nil {
		return nil, err
	}
	if params.driver != "" {
		cfg.Driver = params.driver
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	if params.install {
		fmt.Printf("Installing Playwright browser for the %s variant\n", cfg.Browser)
		if err := engine.InstallPlaywright(cfg.Browser); err != nil {
			return nil, fmt.Errorf("could not install Playwright: %w", err)
		}
	}

	driver, err := engine.NewDriver(cfg.Driver, mainDebugLogger)
	if err != nil {
		return nil, err
	}

	var fixtureServer *fixtures.Server
	if params.fixtures {
		data := fixtures.DefaultData()
		if params.fixturesData != "" {
			if data, err = fixtures.LoadData(params.fixturesData); err != nil {
				return nil, err
			}
		}
		fixtureServer = fixtures.NewServer(data, framework.LoggerWithPrefix(mainDebugLogger, "[fixtures] "))
		if err := fixtureServer.Start(params.fixturesPort); err != nil {
			return nil, err
		}
		defer func() { _ = fixtureServer.Close() }()
		cfg = cfg.WithFixtureBaseURL(fixtureServer.BaseURL())
		fmt.Printf("Using fixture server at %s\n", fixtureServer.BaseURL())
	}

	fmt.Println(cfg.Describe())
	fmt.Println()

	consoleLogger := e2etest.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	env := e2etests.Environment{
		Config:   cfg,
		Driver:   driver,
		Fixtures: fixtureServer,
		Output:   os.Stdout,
	}
	results := e2etests.RunE2ETestSuite(env, params.filters, consoleLogger)

	fmt.Println()
	e2etest.PrintResults(os.Stdout, results)

	return &results, nil
}

func loadSuppressions(params *commandParams) error {
	file, err := os.Open(params.skipFile)
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %w", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "/")
		for i, p := range parts {
			parts[i] = "^" + regexp.QuoteMeta(p) + "$"
		}
		if err := params.filters.MustNotMatch.Set(strings.Join(parts, "/")); err != nil {
			return fmt.Errorf("cannot parse suppression %q: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %w", err)
	}
	return nil
}
