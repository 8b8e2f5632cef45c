package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gdplabs/e2e-test-harness/framework"

	"github.com/PuerkitoBio/goquery"
)

const staticUserAgent = "e2e-test-harness-static"

// staticDriver performs plain HTTP requests. Its "pages" are fetched documents whose title is read
// from the HTML, so it can run the whole suite without a browser as long as no page depends on
// script. It only supports the default variant.
type staticDriver struct {
	logger framework.Logger
	client *http.Client
}

func NewStaticDriver(logger framework.Logger) Driver {
	return &staticDriver{logger: logger, client: http.DefaultClient}
}

func (d *staticDriver) Name() string { return DriverStatic }

func (d *staticDriver) Capabilities() framework.Capabilities {
	return framework.Capabilities{CapabilityAPIRequests, CapabilityPages}
}

func (d *staticDriver) Start() (Engine, error) {
	return &staticEngine{client: d.client, logger: d.logger}, nil
}

type staticEngine struct {
	client *http.Client
	logger framework.Logger
}

func (e *staticEngine) NewRequestContext(options RequestOptions) (RequestContext, error) {
	base, err := url.Parse(options.BaseURL)
	if err != nil {
		return nil, err
	}
	headers := make(http.Header, len(options.Headers))
	for k, v := range options.Headers {
		headers.Set(k, v)
	}
	return &staticRequestContext{
		engine:  e,
		base:    base,
		headers: headers,
		timeout: options.Timeout,
	}, nil
}

func (e *staticEngine) LaunchBrowser(options BrowserOptions) (Browser, error) {
	if options.Variant != VariantDefault {
		return nil, unsupportedVariant(DriverStatic, options.Variant)
	}
	return &staticBrowser{engine: e}, nil
}

func (e *staticEngine) Stop() error {
	return nil
}

// fetch performs one GET and returns the response with its body fully read.
func (e *staticEngine) fetch(target string, headers http.Header, timeout time.Duration) (Response, error) {
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return Response{}, err
	}
	for k, vv := range headers {
		req.Header[k] = vv
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", staticUserAgent)
	}
	client := e.client
	if timeout > 0 {
		c := *client
		c.Timeout = timeout
		client = &c
	}
	resp, err := client.Do(req)
	if err != nil {
		return Response{}, mapHTTPError(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, mapHTTPError(err)
	}
	e.logger.Printf("GET %s: %d (%d bytes)", target, resp.StatusCode, len(body))
	return Response{Status: resp.StatusCode, Body: body}, nil
}

type staticRequestContext struct {
	engine  *staticEngine
	base    *url.URL
	headers http.Header
	timeout time.Duration
}

func (c *staticRequestContext) Get(path string) (Response, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return Response{}, err
	}
	return c.engine.fetch(c.base.ResolveReference(ref).String(), c.headers, c.timeout)
}

func (c *staticRequestContext) Dispose() error {
	return nil
}

type staticBrowser struct {
	engine *staticEngine
}

func (b *staticBrowser) NewPage() (Page, error) {
	return &staticPage{engine: b.engine}, nil
}

func (b *staticBrowser) Close() error {
	return nil
}

type staticPage struct {
	engine *staticEngine
	title  string
	loaded bool
}

func (p *staticPage) Goto(target string, timeout time.Duration) error {
	resp, err := p.engine.fetch(target, nil, timeout)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return fmt.Errorf("unable to parse page: %w", err)
	}
	p.title = strings.TrimSpace(doc.Find("title").First().Text())
	p.loaded = true
	return nil
}

func (p *staticPage) Title() (string, error) {
	if !p.loaded {
		return "", errors.New("no page has been loaded")
	}
	return p.title, nil
}

func (p *staticPage) Close() error {
	return nil
}

func mapHTTPError(err error) error {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
