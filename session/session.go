// Package session manages the automation resources used by a single test: a Session owns a started
// engine, builds the API and page contexts that the test acts through, and releases all of them
// when it is closed.
//
// A Session is created per test and is never shared between tests. Its methods are safe to call
// from a deferred cleanup while another goroutine is still using it, but the harness never runs
// more than one operation on a Session at a time.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdplabs/e2e-test-harness/engine"
	"github.com/gdplabs/e2e-test-harness/framework"
)

// Session owns a started engine and every context built from it.
type Session struct {
	driver    engine.Driver
	engine    engine.Engine
	logger    framework.Logger
	state     State
	contexts  []managedContext
	nextID    int
	closeOnce sync.Once
	closeErr  error
	lock      sync.Mutex
}

// managedContext is a context that the Session must release before stopping its engine.
type managedContext interface {
	fmt.Stringer
	release() error
}

// Start starts the driver's engine. There is a single attempt; if it fails, the error is an
// *EngineStartError and nothing needs to be closed.
func Start(driver engine.Driver, logger framework.Logger) (*Session, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	e, err := driver.Start()
	if err != nil {
		return nil, &EngineStartError{Driver: driver.Name(), Err: err}
	}
	logger.Printf("Started %s engine", driver.Name())
	return &Session{
		driver: driver,
		engine: e,
		logger: logger,
		state:  StateSessionStarted,
	}, nil
}

// With starts a Session, passes it to fn, and closes it however fn exits. If fn returns an error,
// that error is returned as is and any error from closing is only logged; otherwise the result of
// Close is returned.
func With(driver engine.Driver, logger framework.Logger, fn func(*Session) error) (err error) {
	s, err := Start(driver, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := s.Close()
		if closeErr == nil {
			return
		}
		if err != nil {
			s.logger.Printf("Error closing session after failure: %s", closeErr)
			return
		}
		err = closeErr
	}()
	return fn(s)
}

// Driver returns the name of the driver this Session was started with.
func (s *Session) Driver() string {
	return s.driver.Name()
}

// Capabilities returns the capabilities of the driver this Session was started with.
func (s *Session) Capabilities() framework.Capabilities {
	return s.driver.Capabilities()
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.state
}

// MarkAsserted records that the test has checked the result of its action.
func (s *Session) MarkAsserted() {
	s.advance(StateAsserted)
}

func (s *Session) advance(to State) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.state != StateTornDown && to > s.state {
		s.state = to
	}
}

func (s *Session) isClosed() bool {
	return s.State() == StateTornDown
}

func (s *Session) newContextID() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.nextID++
	return s.nextID
}

// track adds a newly built context to the teardown list. It fails if the Session was closed while
// the context was being built, in which case the caller must release the context itself.
func (s *Session) track(mc managedContext) error {
	s.lock.Lock()
	if s.state == StateTornDown {
		s.lock.Unlock()
		return ErrSessionClosed
	}
	s.contexts = append(s.contexts, mc)
	if s.state < StateContextReady {
		s.state = StateContextReady
	}
	s.lock.Unlock()
	s.logger.Printf("Created %s", mc)
	return nil
}

// Close releases every context in the reverse of the order they were built, then stops the
// engine. Only the first call does anything; later calls return the same result. A failure to
// release one resource does not stop the others from being released: each is logged, and all of
// them are returned together.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.lock.Lock()
		contexts := s.contexts
		s.contexts = nil
		s.state = StateTornDown
		s.lock.Unlock()

		var errs []error
		for i := len(contexts) - 1; i >= 0; i-- {
			if err := contexts[i].release(); err != nil {
				s.logger.Printf("Error releasing %s: %s", contexts[i], err)
				errs = append(errs, fmt.Errorf("releasing %s: %w", contexts[i], err))
			} else {
				s.logger.Printf("Released %s", contexts[i])
			}
		}
		if err := s.engine.Stop(); err != nil {
			s.logger.Printf("Error stopping %s engine: %s", s.driver.Name(), err)
			errs = append(errs, fmt.Errorf("stopping %s engine: %w", s.driver.Name(), err))
		} else {
			s.logger.Printf("Stopped %s engine", s.driver.Name())
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}
