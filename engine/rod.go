package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdplabs/e2e-test-harness/framework"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// rodDriver drives a local Chromium over the DevTools protocol. It has no API request support and
// cannot launch the other browser variants.
type rodDriver struct {
	logger framework.Logger
}

func NewRodDriver(logger framework.Logger) Driver {
	return &rodDriver{logger: logger}
}

func (d *rodDriver) Name() string { return DriverRod }

func (d *rodDriver) Capabilities() framework.Capabilities {
	return framework.Capabilities{CapabilityPages}
}

// Start locates a Chromium binary, downloading rod's pinned revision if none is installed.
func (d *rodDriver) Start() (Engine, error) {
	bin, found := launcher.LookPath()
	if !found {
		d.logger.Printf("No local Chromium found, downloading one")
		var err error
		if bin, err = launcher.NewBrowser().Get(); err != nil {
			return nil, fmt.Errorf("unable to obtain Chromium: %w", err)
		}
	}
	d.logger.Printf("Using Chromium at %s", bin)
	return &rodEngine{bin: bin, logger: d.logger}, nil
}

type rodEngine struct {
	bin    string
	logger framework.Logger
}

func (e *rodEngine) NewRequestContext(RequestOptions) (RequestContext, error) {
	return nil, fmt.Errorf("rod driver cannot make API requests: %w", ErrUnsupported)
}

func (e *rodEngine) LaunchBrowser(options BrowserOptions) (Browser, error) {
	if options.Variant != VariantDefault {
		return nil, unsupportedVariant(DriverRod, options.Variant)
	}
	l := launcher.New().
		Bin(e.bin).
		Headless(options.Headless).
		Set("no-sandbox")
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chromium: %w", err)
	}
	browser := rod.New().ControlURL(controlURL)
	if options.SlowMotion.IsDefined() {
		browser = browser.SlowMotion(options.SlowMotion.Value())
	}
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to Chromium: %w", err)
	}
	e.logger.Printf("Launched Chromium (headless=%t)", options.Headless)
	return &rodBrowser{browser: browser, launcher: l}, nil
}

// Stop has nothing to do; each browser owns its own process.
func (e *rodEngine) Stop() error {
	return nil
}

type rodBrowser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func (b *rodBrowser) NewPage() (Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	return &rodPage{page: page}, nil
}

func (b *rodBrowser) Close() error {
	err := b.browser.Close()
	b.launcher.Kill()
	return err
}

type rodPage struct {
	page *rod.Page
}

func (p *rodPage) Goto(url string, timeout time.Duration) error {
	return withTimeout(p.page, timeout, func(page *rod.Page) error {
		if err := page.Navigate(url); err != nil {
			return mapRodError(err)
		}
		return mapRodError(page.WaitLoad())
	})
}

// timeoutScoped is the part of *rod.Page that scopes a deadline to a chain of operations.
type timeoutScoped[P any] interface {
	Timeout(time.Duration) P
	CancelTimeout() P
}

// withTimeout runs fn on a clone of p bounded by timeout, and releases the deadline as soon as
// fn returns. A zero timeout runs fn on p itself.
func withTimeout[P timeoutScoped[P]](p P, timeout time.Duration, fn func(P) error) error {
	if timeout <= 0 {
		return fn(p)
	}
	scoped := p.Timeout(timeout)
	defer scoped.CancelTimeout()
	return fn(scoped)
}

func (p *rodPage) Title() (string, error) {
	info, err := p.page.Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

func (p *rodPage) Close() error {
	return p.page.Close()
}

func mapRodError(err error) error {
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
