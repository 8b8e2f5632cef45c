package engine

import (
	"testing"

	"github.com/gdplabs/e2e-test-harness/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriver(t *testing.T) {
	for _, p := range []struct {
		name         string
		expectedName string
		capabilities framework.Capabilities
	}{
		{"", DriverPlaywright, framework.Capabilities{CapabilityAPIRequests, CapabilityPages, CapabilityFirefox, CapabilityWebKit}},
		{"Playwright", DriverPlaywright, framework.Capabilities{CapabilityAPIRequests, CapabilityPages, CapabilityFirefox, CapabilityWebKit}},
		{"rod", DriverRod, framework.Capabilities{CapabilityPages}},
		{"static", DriverStatic, framework.Capabilities{CapabilityAPIRequests, CapabilityPages}},
	} {
		t.Run(p.expectedName, func(t *testing.T) {
			d, err := NewDriver(p.name, nil)
			require.NoError(t, err)
			assert.Equal(t, p.expectedName, d.Name())
			assert.Equal(t, p.capabilities, d.Capabilities())
		})
	}
}

func TestNewDriverRejectsUnknownName(t *testing.T) {
	_, err := NewDriver("selenium", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown driver "selenium"`)
}

func TestEveryCapabilityIsKnown(t *testing.T) {
	all := framework.Capabilities(AllCapabilities())
	for _, name := range []string{DriverPlaywright, DriverRod, DriverStatic} {
		d, err := NewDriver(name, nil)
		require.NoError(t, err)
		for _, c := range d.Capabilities() {
			assert.True(t, all.Has(c), "%s reports unknown capability %s", name, c)
		}
	}
}

func TestResponseOK(t *testing.T) {
	assert.True(t, Response{Status: 200}.OK())
	assert.True(t, Response{Status: 204}.OK())
	assert.False(t, Response{Status: 199}.OK())
	assert.False(t, Response{Status: 301}.OK())
	assert.False(t, Response{Status: 404}.OK())
}
