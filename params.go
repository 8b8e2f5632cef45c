package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/gdplabs/e2e-test-harness/framework/e2etest"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	configFile   string
	envFile      string
	driver       string
	install      bool
	fixtures     bool
	fixturesPort int
	fixturesData string
	filters      e2etest.RegexFilters
	skipFile     string
	debug        bool
	debugAll     bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.configFile, "config", "", "YAML configuration file")
	fs.StringVar(&c.envFile, "env-file", ".env", "file of environment variables to load if present; real environment variables take precedence")
	fs.StringVar(&c.driver, "driver", "", "automation driver: playwright, rod or static (overrides E2E_DRIVER)")
	fs.BoolVar(&c.install, "install", false, "install the Playwright driver and browser before running")
	fs.BoolVar(&c.fixtures, "fixtures", false, "run against a local fixture server instead of the public endpoints")
	fs.IntVar(&c.fixturesPort, "fixtures-port", 0, "port for the fixture server (0 means any free port)")
	fs.StringVar(&c.fixturesData, "fixtures-data", "", "JSON or YAML file of data for the fixture server")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.skipFile, "skip-from", "", "file of test IDs, one per line, not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.fixturesPort < 0 {
		fmt.Fprintln(os.Stderr, "-fixtures-port cannot be negative")
		fs.Usage()
		return false
	}
	if c.fixturesData != "" && !c.fixtures {
		fmt.Fprintln(os.Stderr, "-fixtures-data requires -fixtures")
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a command line that runs only the given tests, with the same options that
// affect how tests behave.
func rerunCommand(program string, params commandParams, ids []e2etest.TestID) string {
	var cmd commandBuilder
	cmd.add(program)
	if params.configFile != "" {
		cmd.add("-config", params.configFile)
	}
	if params.envFile != ".env" {
		cmd.add("-env-file", params.envFile)
	}
	if params.driver != "" {
		cmd.add("-driver", params.driver)
	}
	if params.fixtures {
		cmd.add("-fixtures")
		if params.fixturesData != "" {
			cmd.add("-fixtures-data", params.fixturesData)
		}
	}
	for _, id := range ids {
		cmd.add("-run", exactTestIDPattern(id))
	}
	cmd.add("-debug")
	return cmd.String()
}

// exactTestIDPattern returns a -run pattern that matches only the given test and its parents.
func exactTestIDPattern(id e2etest.TestID) string {
	parts := make([]string, 0, len(id))
	for _, name := range id {
		parts = append(parts, "^"+regexp.QuoteMeta(name)+"$")
	}
	return strings.Join(parts, "/")
}
