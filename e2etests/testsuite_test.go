package e2etests

import (
	"testing"

	"github.com/gdplabs/e2e-test-harness/config"
	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/fixtures"
	"github.com/gdplabs/e2e-test-harness/framework"
	"github.com/gdplabs/e2e-test-harness/framework/e2etest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capabilityLimitedDriver hides some capabilities of a real driver, to check that the suite
// skips what the driver cannot do.
type capabilityLimitedDriver struct {
	engine.Driver
	capabilities framework.Capabilities
}

func (d capabilityLimitedDriver) Capabilities() framework.Capabilities {
	return d.capabilities
}

func startFixtures(t *testing.T) *fixtures.Server {
	server := fixtures.NewServer(fixtures.DefaultData(), nil)
	require.NoError(t, server.Start(0))
	t.Cleanup(func() { _ = server.Close() })
	return server
}

func fixtureEnvironment(t *testing.T, driver engine.Driver) Environment {
	server := startFixtures(t)
	return Environment{
		Config:   config.Default().WithFixtureBaseURL(server.BaseURL()),
		Driver:   driver,
		Fixtures: server,
	}
}

func runSuite(env Environment, filter e2etest.Filter) e2etest.Results {
	return RunE2ETestSuite(env, filter, nil)
}

func testIDs(results []e2etest.TestResult) []string {
	ret := make([]string, 0, len(results))
	for _, r := range results {
		if len(r.TestID) > 0 {
			ret = append(ret, r.TestID.String())
		}
	}
	return ret
}

func describeFailures(results e2etest.Results) string {
	s := ""
	for _, f := range results.Failures {
		s += f.TestID.String() + ":"
		for _, e := range f.Errors {
			s += " " + e.Error()
		}
		s += "\n"
	}
	return s
}

func TestSuitePassesWithStaticDriverAgainstFixtures(t *testing.T) {
	env := fixtureEnvironment(t, engine.NewStaticDriver(framework.NullLogger()))
	results := runSuite(env, nil)

	require.True(t, results.OK(), describeFailures(results))
	assert.Len(t, results.Skipped, 0)
	assert.ElementsMatch(t, []string{
		"API/todo by id returns expected fields",
		"API/nonexistent path fails with HTTP error",
		"API",
		"API auth/bearer header roundtrips token",
		"API auth",
		"browser/homepage title contains expected text",
		"browser/unrecognized variant falls back to default",
		"browser",
		"teardown/closing a session twice is a no-op",
		"teardown/contexts cannot be built after close",
		"teardown",
	}, testIDs(results.Tests))
}

func TestSuiteSkipsWhatDriverCannotDo(t *testing.T) {
	driver := capabilityLimitedDriver{
		Driver:       engine.NewStaticDriver(framework.NullLogger()),
		capabilities: framework.Capabilities{engine.CapabilityPages},
	}
	results := runSuite(fixtureEnvironment(t, driver), nil)

	require.True(t, results.OK(), describeFailures(results))
	assert.ElementsMatch(t, []e2etest.TestID{{"API"}, {"API auth"}}, results.Skipped)
}

func TestSuiteSkipsBrowserTestForUnsupportedVariant(t *testing.T) {
	env := fixtureEnvironment(t, engine.NewStaticDriver(framework.NullLogger()))
	env.Config.Browser = engine.VariantFirefox
	results := runSuite(env, nil)

	require.True(t, results.OK(), describeFailures(results))
	assert.Equal(t, []e2etest.TestID{{"browser", "homepage title contains expected text"}}, results.Skipped)
}

func TestSuiteReportsWrongTitle(t *testing.T) {
	env := fixtureEnvironment(t, engine.NewStaticDriver(framework.NullLogger()))
	env.Config.ExpectedTitle = "Bing"
	results := runSuite(env, e2etest.FilterFunc(func(id e2etest.TestID) bool {
		return len(id) == 0 || id[0] == "browser"
	}))

	require.Len(t, results.Failures, 1)
	assert.Equal(t, e2etest.TestID{"browser", "homepage title contains expected text"}, results.Failures[0].TestID)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), `contains "Bing"`)
}

func TestSuiteReportsNotFoundPathThatSucceeds(t *testing.T) {
	env := fixtureEnvironment(t, engine.NewStaticDriver(framework.NullLogger()))
	env.Config.NotFoundPath = "/todos/2"
	results := runSuite(env, e2etest.FilterFunc(func(id e2etest.TestID) bool {
		return len(id) < 2 || (id[0] == "API" && id[1] == "nonexistent path fails with HTTP error")
	}))

	require.Len(t, results.Failures, 1)
	assert.Equal(t, e2etest.TestID{"API", "nonexistent path fails with HTTP error"}, results.Failures[0].TestID)
}

func TestSuiteReportsEngineStartFailure(t *testing.T) {
	env := fixtureEnvironment(t, failingDriver{})
	var filters e2etest.RegexFilters
	require.NoError(t, filters.MustMatch.Set("API/todo"))
	results := runSuite(env, filters)

	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unable to start broken engine")
}

type failingDriver struct{}

func (failingDriver) Name() string { return "broken" }

func (failingDriver) Capabilities() framework.Capabilities {
	return framework.Capabilities{engine.CapabilityAPIRequests, engine.CapabilityPages}
}

func (failingDriver) Start() (engine.Engine, error) {
	return nil, engine.ErrUnsupported
}
