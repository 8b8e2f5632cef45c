package session

import (
	"fmt"
	"time"

	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/framework"
)

// fakeDriver starts a fakeEngine, recording every resource operation in order.
type fakeDriver struct {
	startErr error
	engine   *fakeEngine
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{engine: &fakeEngine{responses: map[string]engine.Response{}}}
}

func (d *fakeDriver) Name() string { return "fake" }

func (d *fakeDriver) Capabilities() framework.Capabilities {
	return framework.Capabilities{engine.CapabilityAPIRequests, engine.CapabilityPages}
}

func (d *fakeDriver) Start() (engine.Engine, error) {
	if d.startErr != nil {
		return nil, d.startErr
	}
	return d.engine, nil
}

type fakeEngine struct {
	events          []string
	stopCount       int
	stopErr         error
	requestErr      error
	launchErr       error
	newPageErr      error
	disposeErr      error
	pageCloseErr    error
	browserCloseErr error
	getErr          error
	gotoErr         error
	title           string
	responses       map[string]engine.Response
	lastRequest     engine.RequestOptions
	lastLaunch      engine.BrowserOptions
	lastGotoTimeout time.Duration
	count           int
}

func (e *fakeEngine) record(format string, args ...interface{}) {
	e.events = append(e.events, fmt.Sprintf(format, args...))
}

func (e *fakeEngine) NewRequestContext(options engine.RequestOptions) (engine.RequestContext, error) {
	if e.requestErr != nil {
		return nil, e.requestErr
	}
	e.lastRequest = options
	e.count++
	return &fakeRequestContext{engine: e, name: fmt.Sprintf("rc%d", e.count)}, nil
}

func (e *fakeEngine) LaunchBrowser(options engine.BrowserOptions) (engine.Browser, error) {
	if e.launchErr != nil {
		return nil, e.launchErr
	}
	e.lastLaunch = options
	e.count++
	return &fakeBrowser{engine: e, name: fmt.Sprintf("browser%d", e.count)}, nil
}

func (e *fakeEngine) Stop() error {
	e.stopCount++
	e.record("stop")
	return e.stopErr
}

type fakeRequestContext struct {
	engine *fakeEngine
	name   string
}

func (c *fakeRequestContext) Get(path string) (engine.Response, error) {
	c.engine.record("%s get %s", c.name, path)
	if c.engine.getErr != nil {
		return engine.Response{}, c.engine.getErr
	}
	if resp, ok := c.engine.responses[path]; ok {
		return resp, nil
	}
	return engine.Response{Status: 404, Body: []byte("{}")}, nil
}

func (c *fakeRequestContext) Dispose() error {
	c.engine.record("dispose %s", c.name)
	return c.engine.disposeErr
}

type fakeBrowser struct {
	engine *fakeEngine
	name   string
}

func (b *fakeBrowser) NewPage() (engine.Page, error) {
	if b.engine.newPageErr != nil {
		return nil, b.engine.newPageErr
	}
	return &fakePage{engine: b.engine, name: b.name + "/page"}, nil
}

func (b *fakeBrowser) Close() error {
	b.engine.record("close %s", b.name)
	return b.engine.browserCloseErr
}

type fakePage struct {
	engine *fakeEngine
	name   string
}

func (p *fakePage) Goto(url string, timeout time.Duration) error {
	p.engine.record("%s goto %s", p.name, url)
	p.engine.lastGotoTimeout = timeout
	return p.engine.gotoErr
}

func (p *fakePage) Title() (string, error) {
	return p.engine.title, nil
}

func (p *fakePage) Close() error {
	p.engine.record("close %s", p.name)
	return p.engine.pageCloseErr
}
