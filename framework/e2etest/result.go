package e2etest

import (
	"fmt"
	"strings"
	"time"
)

// Results summarizes a whole test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestID
}

// TestResult describes one completed test scope.
type TestResult struct {
	TestID   TestID
	Errors   []error
	Duration time.Duration
}

// OK returns true if no test failed.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Failed returns true if this test recorded any failure.
func (r TestResult) Failed() bool {
	return len(r.Errors) != 0
}

// TestID is the full path of a test: the names of its parent scopes followed by its own name.
type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

// Plus returns a new TestID for a subtest; the original is not modified.
func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
