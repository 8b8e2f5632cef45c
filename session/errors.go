package session

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionClosed is wrapped by errors from operations on a Session, or on a context built by
	// it, after the Session has been closed.
	ErrSessionClosed = errors.New("session is closed")

	// ErrMalformedResponse is wrapped by the error from a fetch whose response body is not JSON.
	ErrMalformedResponse = errors.New("response body is not valid JSON")
)

// EngineStartError means the driver could not start its engine, for instance because the
// browser binaries are not installed.
type EngineStartError struct {
	Driver string
	Err    error
}

func (e *EngineStartError) Error() string {
	return fmt.Sprintf("unable to start %s engine: %s", e.Driver, e.Err)
}

func (e *EngineStartError) Unwrap() error { return e.Err }

// ContextKind says what kind of context a ContextCreationError was about.
type ContextKind string

const (
	KindAPI  ContextKind = "API"
	KindPage ContextKind = "page"
)

// ContextCreationError means a context could not be built, either because its configuration was
// invalid or because the engine rejected it.
type ContextCreationError struct {
	Kind ContextKind
	Err  error
}

func (e *ContextCreationError) Error() string {
	return fmt.Sprintf("unable to create %s context: %s", e.Kind, e.Err)
}

func (e *ContextCreationError) Unwrap() error { return e.Err }

// HTTPError is the result of a fetch that completed with a status outside the 2xx range.
type HTTPError struct {
	Status int
	Path   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.Status, e.Path)
}

// NavigationError means a page could not be loaded or its title could not be read.
type NavigationError struct {
	URL     string
	Timeout bool
	Err     error
}

func (e *NavigationError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("navigation to %s timed out: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("navigation to %s failed: %s", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }
