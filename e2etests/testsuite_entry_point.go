// Package e2etests is the end-to-end suite: API requests with and without bearer authentication,
// a browser title check, and checks on session teardown. Run it with RunE2ETestSuite.
package e2etests

import (
	"io"

	"github.com/gdplabs/e2e-test-harness/config"
	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/fixtures"
	"github.com/gdplabs/e2e-test-harness/framework/e2etest"
)

// Environment is everything the suite needs from the command line.
type Environment struct {
	Config config.Config
	Driver engine.Driver

	// Fixtures is the local fixture server, if the suite is running against one. Config must then
	// already point at it.
	Fixtures *fixtures.Server

	// Output receives the description of any filtering; nil means discard it.
	Output io.Writer
}

type e2eTestContext struct {
	config   config.Config
	driver   engine.Driver
	fixtures *fixtures.Server
}

// RunE2ETestSuite runs every test that the filter allows and the driver can support.
func RunE2ETestSuite(env Environment, filter e2etest.Filter, testLogger e2etest.TestLogger) e2etest.Results {
	capabilities := env.Driver.Capabilities()
	if env.Output != nil {
		regexFilters, _ := filter.(e2etest.RegexFilters)
		e2etest.PrintFilterDescription(env.Output, regexFilters, engine.AllCapabilities(), capabilities)
	}

	testConfig := e2etest.TestConfiguration{
		Filter:       filter,
		Capabilities: capabilities,
		TestLogger:   testLogger,
		Context: e2eTestContext{
			config:   env.Config,
			driver:   env.Driver,
			fixtures: env.Fixtures,
		},
	}

	return e2etest.Run(testConfig, func(t *e2etest.T) {
		t.Run("API", doAPITests)
		t.Run("API auth", doAPIAuthTests)
		t.Run("browser", doBrowserTests)
		t.Run("teardown", doTeardownTests)
	})
}

func requireContext(t *e2etest.T) e2eTestContext {
	if c, ok := t.Context().(e2eTestContext); ok {
		return c
	}
	panic("e2etests framework initialization error: did not find e2eTestContext")
}
