package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gdplabs/e2e-test-harness/engine"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Get performs one GET request for a path relative to the context's base URL and decodes the JSON
// response. A status outside the 2xx range gives an *HTTPError, and a body that is not JSON gives an
// error wrapping ErrMalformedResponse. The request is not retried.
func (c *APIContext) Get(path string) (ldvalue.Value, error) {
	if c.session.isClosed() {
		return ldvalue.Null(), fmt.Errorf("GET %s: %w", path, ErrSessionClosed)
	}
	resp, err := c.rc.Get(path)
	if err != nil {
		return ldvalue.Null(), fmt.Errorf("GET %s failed: %w", path, err)
	}
	c.session.advance(StateActionDone)
	c.session.logger.Printf("GET %s: status %d", path, resp.Status)
	if !resp.OK() {
		return ldvalue.Null(), &HTTPError{Status: resp.Status, Path: path}
	}
	var result ldvalue.Value
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return ldvalue.Null(), fmt.Errorf("GET %s: %w (%s)", path, ErrMalformedResponse, err)
	}
	return result, nil
}

// GotoAndReadTitle navigates the page to a URL, waits for it to load, and returns its title. Any
// failure is a *NavigationError.
func (c *PageContext) GotoAndReadTitle(url string) (string, error) {
	if c.session.isClosed() {
		return "", &NavigationError{URL: url, Err: ErrSessionClosed}
	}
	if err := c.page.Goto(url, c.timeout); err != nil {
		return "", &NavigationError{URL: url, Timeout: errors.Is(err, engine.ErrTimeout), Err: err}
	}
	title, err := c.page.Title()
	if err != nil {
		return "", &NavigationError{URL: url, Err: err}
	}
	c.session.advance(StateActionDone)
	c.session.logger.Printf("Loaded %s: title %q", url, title)
	return title, nil
}
