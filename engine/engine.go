// Package engine defines the automation engine that the harness drives, and provides the drivers
// that implement it: playwright (API requests and all browser variants), rod (Chromium pages only)
// and static (plain HTTP with HTML title extraction, for running without a browser).
package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdplabs/e2e-test-harness/framework"
	"github.com/gdplabs/e2e-test-harness/framework/opt"
)

// Driver names accepted by NewDriver.
const (
	DriverPlaywright = "playwright"
	DriverRod        = "rod"
	DriverStatic     = "static"
)

// Capabilities a driver may report. Tests that need one of these are skipped when the selected
// driver does not have it.
const (
	CapabilityAPIRequests = "api-requests"
	CapabilityPages       = "pages"
	CapabilityFirefox     = "firefox"
	CapabilityWebKit      = "webkit"
)

// AllCapabilities lists every capability any driver may have.
func AllCapabilities() []string {
	return []string{CapabilityAPIRequests, CapabilityPages, CapabilityFirefox, CapabilityWebKit}
}

var (
	// ErrTimeout is wrapped by any error caused by an operation exceeding its timeout.
	ErrTimeout = errors.New("operation timed out")

	// ErrUnsupported is returned when a driver is asked for something it cannot do.
	ErrUnsupported = errors.New("not supported by this driver")
)

// Driver knows how to start one kind of Engine.
type Driver interface {
	Name() string
	Capabilities() framework.Capabilities
	Start() (Engine, error)
}

// Engine is a started automation runtime. Everything created from it must be released before Stop.
type Engine interface {
	NewRequestContext(options RequestOptions) (RequestContext, error)
	LaunchBrowser(options BrowserOptions) (Browser, error)
	Stop() error
}

// RequestOptions configures an API request context.
type RequestOptions struct {
	BaseURL string
	Headers map[string]string
	Timeout time.Duration
}

// BrowserOptions configures a browser launch.
type BrowserOptions struct {
	Variant    Variant
	Headless   bool
	SlowMotion opt.Maybe[time.Duration]
	Timeout    time.Duration
}

// RequestContext issues HTTP requests relative to its base URL, sending its configured headers.
type RequestContext interface {
	Get(path string) (Response, error)
	Dispose() error
}

// Response is a completed HTTP response. The body has been fully read.
type Response struct {
	Status int
	Body   []byte
}

// OK returns true for a 2xx status.
func (r Response) OK() bool {
	return r.Status >= 200 && r.Status <= 299
}

type Browser interface {
	NewPage() (Page, error)
	Close() error
}

type Page interface {
	// Goto navigates and waits for the load event. A zero timeout means the driver's default.
	Goto(url string, timeout time.Duration) error
	Title() (string, error)
	Close() error
}

// NewDriver returns the driver with the given name. An empty name selects playwright.
func NewDriver(name string, logger framework.Logger) (Driver, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DriverPlaywright:
		return NewPlaywrightDriver(logger), nil
	case DriverRod:
		return NewRodDriver(logger), nil
	case DriverStatic:
		return NewStaticDriver(logger), nil
	default:
		return nil, fmt.Errorf("unknown driver %q (expected %s, %s or %s)", name, DriverPlaywright, DriverRod, DriverStatic)
	}
}

func unsupportedVariant(driver string, v Variant) error {
	return fmt.Errorf("%s driver cannot launch the %s browser: %w", driver, v, ErrUnsupported)
}
