package e2etests

import (
	"errors"

	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/framework/e2etest"
	m "github.com/gdplabs/e2e-test-harness/framework/matchers"
	"github.com/gdplabs/e2e-test-harness/session"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doAPITests(t *e2etest.T) {
	t.RequireCapability(engine.CapabilityAPIRequests)

	t.Run("todo by id returns expected fields", func(t *e2etest.T) {
		c := requireContext(t)
		s := NewSession(t)
		api := NewAPIContext(t, s, c.config.ResourceBaseURL)

		result, err := api.Get(c.config.ResourcePath)
		require.NoError(t, err)
		t.Debug("Received %s", result.JSONString())

		m.AllOf(
			m.ValueOfType(ldvalue.ObjectType),
			m.JSONProperty("id").Should(m.ValueEqual(ldvalue.Int(1))),
			m.JSONProperty("title").Should(m.ValueOfType(ldvalue.StringType)),
			m.HasProperties("userId", "completed"),
		).Assert(t, result)
		s.MarkAsserted()
	})

	t.Run("nonexistent path fails with HTTP error", func(t *e2etest.T) {
		c := requireContext(t)
		s := NewSession(t)
		api := NewAPIContext(t, s, c.config.ResourceBaseURL)

		_, err := api.Get(c.config.NotFoundPath)
		var httpErr *session.HTTPError
		require.True(t, errors.As(err, &httpErr), "expected an HTTP error, got: %v", err)
		m.Not(m.Between(200, 299)).Assert(t, httpErr.Status)
		assert.Equal(t, c.config.NotFoundPath, httpErr.Path)
		s.MarkAsserted()
	})
}
