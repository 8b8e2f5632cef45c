package e2etests

import (
	"time"

	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/framework/e2etest"
	m "github.com/gdplabs/e2e-test-harness/framework/matchers"
	"github.com/gdplabs/e2e-test-harness/session"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureRequestTimeout = time.Second * 5

func doAPIAuthTests(t *e2etest.T) {
	t.RequireCapability(engine.CapabilityAPIRequests)

	t.Run("bearer header roundtrips token", func(t *e2etest.T) {
		c := requireContext(t)
		s := NewSession(t)
		api := NewAPIContext(t, s, c.config.AuthBaseURL, session.WithBearerToken(c.config.APIBearerToken))

		if c.fixtures != nil {
			c.fixtures.DiscardRequests()
		}
		result, err := api.Get(c.config.BearerPath)
		require.NoError(t, err)

		m.JSONProperty("authenticated").Should(m.ValueEqual(ldvalue.Bool(true))).Assert(t, result)

		if c.fixtures != nil {
			received := c.fixtures.RequireRequest(t, fixtureRequestTimeout)
			assert.Equal(t, c.config.BearerPath, received.URL.Path)
			assert.Equal(t, "Bearer "+c.config.APIBearerToken, received.Headers.Get("Authorization"))
		}
		s.MarkAsserted()
	})
}
