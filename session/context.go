package session

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/framework/helpers"
	"github.com/gdplabs/e2e-test-harness/framework/opt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ContextConfig describes a context to be built.
type ContextConfig struct {
	// BaseURL is the root that API request paths are resolved against. It must be an absolute
	// http or https URL. It is not used for page contexts.
	BaseURL string

	// Headers are sent with every API request.
	Headers map[string]string

	// Variant selects the browser for a page context.
	Variant engine.Variant

	Headless   bool
	SlowMotion opt.Maybe[time.Duration]

	// Timeout bounds each action taken through the context. Zero means the engine's default.
	Timeout time.Duration
}

// ContextOption is a configuration option for NewAPIContext and NewPageContext.
type ContextOption helpers.ConfigOption[ContextConfig]

type contextOptionFunc func(*ContextConfig) error

func (f contextOptionFunc) Configure(c *ContextConfig) error { return f(c) }

// WithBaseURL sets ContextConfig.BaseURL.
func WithBaseURL(baseURL string) ContextOption {
	return contextOptionFunc(func(c *ContextConfig) error {
		c.BaseURL = baseURL
		return nil
	})
}

// WithHeader adds a header to ContextConfig.Headers.
func WithHeader(name, value string) ContextOption {
	return contextOptionFunc(func(c *ContextConfig) error {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		c.Headers[name] = value
		return nil
	})
}

// WithBearerToken sends "Authorization: Bearer <token>" with every request.
func WithBearerToken(token string) ContextOption {
	return WithHeader("Authorization", "Bearer "+token)
}

func WithVariant(variant engine.Variant) ContextOption {
	return contextOptionFunc(func(c *ContextConfig) error {
		c.Variant = variant
		return nil
	})
}

func WithHeadless(headless bool) ContextOption {
	return contextOptionFunc(func(c *ContextConfig) error {
		c.Headless = headless
		return nil
	})
}

func WithSlowMotion(slowMotion opt.Maybe[time.Duration]) ContextOption {
	return contextOptionFunc(func(c *ContextConfig) error {
		c.SlowMotion = slowMotion
		return nil
	})
}

func WithTimeout(timeout time.Duration) ContextOption {
	return contextOptionFunc(func(c *ContextConfig) error {
		if timeout < 0 {
			return errors.New("timeout cannot be negative")
		}
		c.Timeout = timeout
		return nil
	})
}

// APIContext issues JSON API requests against a base URL.
type APIContext struct {
	session *Session
	id      int
	baseURL string
	rc      engine.RequestContext
	timeout time.Duration
}

// PageContext is a browser with one open page.
type PageContext struct {
	session *Session
	id      int
	variant engine.Variant
	browser engine.Browser
	page    engine.Page
	timeout time.Duration
}

func buildConfig(kind ContextKind, options []ContextOption) (ContextConfig, error) {
	config := ContextConfig{Headless: true}
	if err := helpers.ApplyOptions(&config, options...); err != nil {
		return config, &ContextCreationError{Kind: kind, Err: err}
	}
	return config, nil
}

// NewAPIContext builds a context for API requests. The error, if any, is a *ContextCreationError.
func (s *Session) NewAPIContext(options ...ContextOption) (*APIContext, error) {
	config, err := buildConfig(KindAPI, options)
	if err != nil {
		return nil, err
	}
	if err := validateAPIConfig(config); err != nil {
		return nil, &ContextCreationError{Kind: KindAPI, Err: err}
	}
	if s.isClosed() {
		return nil, &ContextCreationError{Kind: KindAPI, Err: ErrSessionClosed}
	}
	s.logger.Printf("Creating API context for %s with headers [%s]", config.BaseURL, describeHeaders(config.Headers))
	rc, err := s.engine.NewRequestContext(engine.RequestOptions{
		BaseURL: config.BaseURL,
		Headers: maps.Clone(config.Headers),
		Timeout: config.Timeout,
	})
	if err != nil {
		return nil, &ContextCreationError{Kind: KindAPI, Err: err}
	}
	c := &APIContext{
		session: s,
		id:      s.newContextID(),
		baseURL: config.BaseURL,
		rc:      rc,
		timeout: config.Timeout,
	}
	if err := s.track(c); err != nil {
		_ = c.release()
		return nil, &ContextCreationError{Kind: KindAPI, Err: err}
	}
	return c, nil
}

// NewPageContext launches a browser of the configured variant and opens a page in it. The error,
// if any, is a *ContextCreationError.
func (s *Session) NewPageContext(options ...ContextOption) (*PageContext, error) {
	config, err := buildConfig(KindPage, options)
	if err != nil {
		return nil, err
	}
	if s.isClosed() {
		return nil, &ContextCreationError{Kind: KindPage, Err: ErrSessionClosed}
	}
	browser, err := s.engine.LaunchBrowser(engine.BrowserOptions{
		Variant:    config.Variant,
		Headless:   config.Headless,
		SlowMotion: config.SlowMotion,
		Timeout:    config.Timeout,
	})
	if err != nil {
		return nil, &ContextCreationError{Kind: KindPage, Err: err}
	}
	page, err := browser.NewPage()
	if err != nil {
		if closeErr := browser.Close(); closeErr != nil {
			s.logger.Printf("Error closing browser after failing to open page: %s", closeErr)
		}
		return nil, &ContextCreationError{Kind: KindPage, Err: err}
	}
	c := &PageContext{
		session: s,
		id:      s.newContextID(),
		variant: config.Variant,
		browser: browser,
		page:    page,
		timeout: config.Timeout,
	}
	if err := s.track(c); err != nil {
		_ = c.release()
		return nil, &ContextCreationError{Kind: KindPage, Err: err}
	}
	return c, nil
}

func (c *APIContext) String() string {
	return fmt.Sprintf("API context #%d (%s)", c.id, c.baseURL)
}

// BaseURL returns the URL that request paths are resolved against.
func (c *APIContext) BaseURL() string {
	return c.baseURL
}

func (c *APIContext) release() error {
	return c.rc.Dispose()
}

func (c *PageContext) String() string {
	return fmt.Sprintf("page context #%d (%s browser)", c.id, c.variant)
}

// Variant returns the browser variant this context was launched with.
func (c *PageContext) Variant() engine.Variant {
	return c.variant
}

// release closes the page before the browser that contains it.
func (c *PageContext) release() error {
	var errs []error
	if err := c.page.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing page: %w", err))
	}
	if err := c.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing browser: %w", err))
	}
	return errors.Join(errs...)
}

func validateAPIConfig(config ContextConfig) error {
	u, err := url.Parse(config.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", config.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL %q must be an absolute http or https URL", config.BaseURL)
	}
	for name := range config.Headers {
		if strings.TrimSpace(name) == "" {
			return errors.New("header name cannot be empty")
		}
	}
	return nil
}

// describeHeaders lists header names only; values may be credentials.
func describeHeaders(headers map[string]string) string {
	names := maps.Keys(headers)
	slices.Sort(names)
	return strings.Join(names, ", ")
}
