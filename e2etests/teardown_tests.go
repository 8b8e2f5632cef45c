package e2etests

import (
	"errors"

	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/framework/e2etest"
	"github.com/gdplabs/e2e-test-harness/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doTeardownTests(t *e2etest.T) {
	t.Run("closing a session twice is a no-op", func(t *e2etest.T) {
		c := requireContext(t)
		s := NewSession(t)
		if t.Capabilities().Has(engine.CapabilityAPIRequests) {
			_ = NewAPIContext(t, s, c.config.ResourceBaseURL)
		} else if t.Capabilities().Has(engine.CapabilityPages) {
			_ = NewPageContext(t, s, session.WithVariant(engine.VariantDefault))
		}

		firstErr := s.Close()
		assert.Equal(t, session.StateTornDown, s.State())
		secondErr := s.Close()
		assert.Equal(t, firstErr, secondErr)
		assert.Equal(t, session.StateTornDown, s.State())
	})

	t.Run("contexts cannot be built after close", func(t *e2etest.T) {
		c := requireContext(t)
		s := NewSession(t)
		require.NoError(t, s.Close())

		_, err := s.NewAPIContext(session.WithBaseURL(c.config.ResourceBaseURL))
		var creationErr *session.ContextCreationError
		require.True(t, errors.As(err, &creationErr), "expected a context creation error, got: %v", err)
		assert.True(t, errors.Is(err, session.ErrSessionClosed))
	})
}
