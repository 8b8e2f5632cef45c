package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdplabs/e2e-test-harness/framework"

	"github.com/playwright-community/playwright-go"
)

type playwrightDriver struct {
	logger framework.Logger
}

// NewPlaywrightDriver returns the default driver. It needs the Playwright driver and browsers to
// be installed; see InstallPlaywright.
func NewPlaywrightDriver(logger framework.Logger) Driver {
	return &playwrightDriver{logger: logger}
}

func (d *playwrightDriver) Name() string { return DriverPlaywright }

func (d *playwrightDriver) Capabilities() framework.Capabilities {
	return framework.Capabilities{CapabilityAPIRequests, CapabilityPages, CapabilityFirefox, CapabilityWebKit}
}

func (d *playwrightDriver) Start() (Engine, error) {
	d.logger.Printf("Starting Playwright")
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	return &playwrightEngine{pw: pw, logger: d.logger}, nil
}

// InstallPlaywright downloads the Playwright driver and the browsers for the given variants. It
// is only needed once per machine.
func InstallPlaywright(variants ...Variant) error {
	browsers := make([]string, 0, len(variants))
	for _, v := range variants {
		browsers = append(browsers, playwrightBrowserName(v))
	}
	if len(browsers) == 0 {
		browsers = append(browsers, playwrightBrowserName(VariantDefault))
	}
	return playwright.Install(&playwright.RunOptions{Browsers: browsers})
}

func playwrightBrowserName(v Variant) string {
	switch v {
	case VariantFirefox:
		return "firefox"
	case VariantWebKit:
		return "webkit"
	default:
		return "chromium"
	}
}

type playwrightEngine struct {
	pw     *playwright.Playwright
	logger framework.Logger
}

func (e *playwrightEngine) NewRequestContext(options RequestOptions) (RequestContext, error) {
	contextOptions := playwright.APIRequestNewContextOptions{
		BaseURL:          playwright.String(options.BaseURL),
		ExtraHttpHeaders: options.Headers,
	}
	if options.Timeout > 0 {
		contextOptions.Timeout = playwrightMillis(options.Timeout)
	}
	rc, err := e.pw.Request.NewContext(contextOptions)
	if err != nil {
		return nil, err
	}
	return &playwrightRequestContext{rc: rc}, nil
}

func (e *playwrightEngine) LaunchBrowser(options BrowserOptions) (Browser, error) {
	var browserType playwright.BrowserType
	switch options.Variant {
	case VariantFirefox:
		browserType = e.pw.Firefox
	case VariantWebKit:
		browserType = e.pw.WebKit
	default:
		browserType = e.pw.Chromium
	}
	launchOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(options.Headless),
	}
	if options.SlowMotion.IsDefined() {
		launchOptions.SlowMo = playwright.Float(float64(options.SlowMotion.Value().Milliseconds()))
	}
	if options.Timeout > 0 {
		launchOptions.Timeout = playwrightMillis(options.Timeout)
	}
	e.logger.Printf("Launching %s (headless=%t)", browserType.Name(), options.Headless)
	browser, err := browserType.Launch(launchOptions)
	if err != nil {
		return nil, mapPlaywrightError(err)
	}
	return &playwrightBrowser{browser: browser}, nil
}

func (e *playwrightEngine) Stop() error {
	e.logger.Printf("Stopping Playwright")
	return e.pw.Stop()
}

type playwrightRequestContext struct {
	rc playwright.APIRequestContext
}

func (c *playwrightRequestContext) Get(path string) (Response, error) {
	resp, err := c.rc.Get(path)
	if err != nil {
		return Response{}, mapPlaywrightError(err)
	}
	defer func() { _ = resp.Dispose() }()
	body, err := resp.Body()
	if err != nil {
		return Response{}, fmt.Errorf("unable to read response body: %w", err)
	}
	return Response{Status: resp.Status(), Body: body}, nil
}

func (c *playwrightRequestContext) Dispose() error {
	return c.rc.Dispose()
}

type playwrightBrowser struct {
	browser playwright.Browser
}

func (b *playwrightBrowser) NewPage() (Page, error) {
	page, err := b.browser.NewPage()
	if err != nil {
		return nil, err
	}
	return &playwrightPage{page: page}, nil
}

func (b *playwrightBrowser) Close() error {
	return b.browser.Close()
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Goto(url string, timeout time.Duration) error {
	options := playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateLoad}
	if timeout > 0 {
		options.Timeout = playwrightMillis(timeout)
	}
	_, err := p.page.Goto(url, options)
	return mapPlaywrightError(err)
}

func (p *playwrightPage) Title() (string, error) {
	return p.page.Title()
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}

func playwrightMillis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func mapPlaywrightError(err error) error {
	if err != nil && errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
