package session

import (
	"errors"
	"testing"
	"time"

	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/framework"
	"github.com/gdplabs/e2e-test-harness/framework/opt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIContextPassesConfigurationToEngine(t *testing.T) {
	d := newFakeDriver()
	s := startFake(t, d)

	api, err := s.NewAPIContext(
		WithBaseURL("https://httpbin.org"),
		WithBearerToken("abc"),
		WithHeader("Accept", "application/json"),
		WithTimeout(5*time.Second),
	)
	require.NoError(t, err)
	assert.Equal(t, "https://httpbin.org", api.BaseURL())
	assert.Equal(t, engine.RequestOptions{
		BaseURL: "https://httpbin.org",
		Headers: map[string]string{"Authorization": "Bearer abc", "Accept": "application/json"},
		Timeout: 5 * time.Second,
	}, d.engine.lastRequest)
}

func TestNewAPIContextDoesNotLogHeaderValues(t *testing.T) {
	logger := &framework.CapturingLogger{}
	s, err := Start(newFakeDriver(), logger)
	require.NoError(t, err)

	_, err = s.NewAPIContext(WithBaseURL("https://httpbin.org"), WithBearerToken("super-secret"), WithHeader("X-B", "1"))
	require.NoError(t, err)

	output := logger.Output().ToString("")
	assert.Contains(t, output, "with headers [Authorization, X-B]")
	assert.NotContains(t, output, "super-secret")
}

func TestNewAPIContextRejectsInvalidConfig(t *testing.T) {
	for name, options := range map[string][]ContextOption{
		"no base URL":       nil,
		"relative base URL": {WithBaseURL("/todos")},
		"ftp base URL":      {WithBaseURL("ftp://example.com")},
		"unparseable URL":   {WithBaseURL("http://[::1")},
		"empty header name": {WithBaseURL("https://example.com"), WithHeader(" ", "x")},
		"negative timeout":  {WithBaseURL("https://example.com"), WithTimeout(-time.Second)},
	} {
		t.Run(name, func(t *testing.T) {
			d := newFakeDriver()
			s := startFake(t, d)
			_, err := s.NewAPIContext(options...)
			var ce *ContextCreationError
			require.True(t, errors.As(err, &ce), "error was: %v", err)
			assert.Equal(t, KindAPI, ce.Kind)
			assert.Equal(t, StateSessionStarted, s.State())
			assert.Equal(t, engine.RequestOptions{}, d.engine.lastRequest)
		})
	}
}

func TestNewAPIContextEngineRejection(t *testing.T) {
	d := newFakeDriver()
	d.engine.requestErr = engine.ErrUnsupported
	s := startFake(t, d)

	_, err := s.NewAPIContext(WithBaseURL("https://example.com"))
	assert.True(t, errors.Is(err, engine.ErrUnsupported))
	assert.Equal(t, "unable to create API context: not supported by this driver", err.Error())
}

func TestNewPageContextPassesConfigurationToEngine(t *testing.T) {
	d := newFakeDriver()
	s := startFake(t, d)

	page, err := s.NewPageContext(
		WithVariant(engine.VariantWebKit),
		WithHeadless(false),
		WithSlowMotion(opt.Some(100*time.Millisecond)),
	)
	require.NoError(t, err)
	assert.Equal(t, engine.VariantWebKit, page.Variant())
	assert.Equal(t, engine.BrowserOptions{
		Variant:    engine.VariantWebKit,
		Headless:   false,
		SlowMotion: opt.Some(100 * time.Millisecond),
	}, d.engine.lastLaunch)
}

func TestNewPageContextDefaultsToHeadless(t *testing.T) {
	d := newFakeDriver()
	_, err := startFake(t, d).NewPageContext()
	require.NoError(t, err)
	assert.True(t, d.engine.lastLaunch.Headless)
	assert.Equal(t, engine.VariantDefault, d.engine.lastLaunch.Variant)
}

func TestNewPageContextUnsupportedVariant(t *testing.T) {
	d := newFakeDriver()
	d.engine.launchErr = engine.ErrUnsupported
	s := startFake(t, d)

	_, err := s.NewPageContext(WithVariant(engine.VariantFirefox))
	var ce *ContextCreationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, KindPage, ce.Kind)
	assert.True(t, errors.Is(err, engine.ErrUnsupported))
}

func TestNewPageContextClosesBrowserIfPageCannotOpen(t *testing.T) {
	d := newFakeDriver()
	d.engine.newPageErr = errors.New("target closed")
	s := startFake(t, d)

	_, err := s.NewPageContext()
	require.Error(t, err)
	assert.Equal(t, []string{"close browser1"}, d.engine.events)

	require.NoError(t, s.Close())
	assert.Equal(t, []string{"close browser1", "stop"}, d.engine.events)
}
