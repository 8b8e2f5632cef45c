package e2etests

import (
	"fmt"

	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/framework/e2etest"
	"github.com/gdplabs/e2e-test-harness/session"

	"github.com/stretchr/testify/require"
)

// NewSession starts a session with the suite's driver.
//
// Any error in starting it causes the test to fail and terminate immediately. The session is closed
// automatically when this test scope exits; if releasing anything fails, that is written to the
// test's debug output but does not fail the test, since the test's own outcome has already been
// decided.
func NewSession(t *e2etest.T) *session.Session {
	c := requireContext(t)
	s, err := session.Start(c.driver, t.DebugLogger())
	require.NoError(t, err)
	t.Defer(func() {
		if err := s.Close(); err != nil {
			t.Debug("Error releasing session resources: %s", err)
		}
	})
	return s
}

// NewAPIContext builds an API context against baseURL with the configured action timeout. Extra
// options are applied after the defaults.
func NewAPIContext(t *e2etest.T, s *session.Session, baseURL string, options ...session.ContextOption) *session.APIContext {
	c := requireContext(t)
	all := append([]session.ContextOption{
		session.WithBaseURL(baseURL),
		session.WithTimeout(c.config.ActionTimeout),
	}, options...)
	api, err := s.NewAPIContext(all...)
	require.NoError(t, err)
	return api
}

// NewPageContext launches a browser as configured (variant, headless, slow motion) and opens a
// page. Extra options are applied after the defaults.
func NewPageContext(t *e2etest.T, s *session.Session, options ...session.ContextOption) *session.PageContext {
	c := requireContext(t)
	all := append([]session.ContextOption{
		session.WithVariant(c.config.Browser),
		session.WithHeadless(c.config.Headless),
		session.WithSlowMotion(c.config.SlowMotion()),
		session.WithTimeout(c.config.ActionTimeout),
	}, options...)
	page, err := s.NewPageContext(all...)
	require.NoError(t, err)
	return page
}

// requireVariant skips the test if the driver cannot launch the given browser variant.
func requireVariant(t *e2etest.T, variant engine.Variant) {
	required := []string{engine.CapabilityPages}
	if c := variant.Capability(); c != "" {
		required = append(required, c)
	}
	if !t.Capabilities().HasAll(required...) {
		t.SkipWithReason(fmt.Sprintf("driver cannot open %s pages", variant))
	}
}
