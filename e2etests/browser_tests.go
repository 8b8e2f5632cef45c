package e2etests

import (
	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/framework/e2etest"
	m "github.com/gdplabs/e2e-test-harness/framework/matchers"
	"github.com/gdplabs/e2e-test-harness/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doBrowserTests(t *e2etest.T) {
	t.RequireCapability(engine.CapabilityPages)

	t.Run("homepage title contains expected text", func(t *e2etest.T) {
		c := requireContext(t)
		requireVariant(t, c.config.Browser)
		s := NewSession(t)
		page := NewPageContext(t, s)

		title, err := page.GotoAndReadTitle(c.config.PageURL)
		require.NoError(t, err)
		m.ContainsSubstring(c.config.ExpectedTitle).Assert(t, title)
		s.MarkAsserted()
	})

	t.Run("unrecognized variant falls back to default", func(t *e2etest.T) {
		variant := engine.ParseVariant("opera")
		assert.Equal(t, engine.VariantDefault, variant)

		s := NewSession(t)
		page := NewPageContext(t, s, session.WithVariant(variant))
		assert.Equal(t, engine.VariantDefault, page.Variant())
		s.MarkAsserted()
	})
}
