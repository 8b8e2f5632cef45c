// Package matchers provides a flexible test assertion API similar to Java's Hamcrest. Matchers are
// constructed separately from the values being tested, and can then be applied to any value, or
// negated, or combined in various ways.
//
// A Matcher is parameterized by the type of value it tests, so combining matchers for different
// types is a compile-time error. Use Transform to test some part of a larger value.
package matchers

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Matcher is a general mechanism for declaring expectations about a value. Matchers can be
// combined, and they self-describe on failure.
type Matcher[V any] struct {
	test            func(value V) bool
	describeFailure func(value V) string
	describeValue   func(value V) string
}

// New creates a Matcher. The test function returns true if the value passes. The describeFailure
// function returns a description of the expectation, such as "equal to 3"; a description of the
// actual value is always appended to it automatically.
func New[V any](test func(V) bool, describeFailure func(V) string) Matcher[V] {
	return Matcher[V]{test: test, describeFailure: describeFailure}
}

// Test executes the expectation for a specific value. It returns true if the value passes the
// test, or false plus a string describing the expectation that failed.
func (m Matcher[V]) Test(value V) (pass bool, failDescription string) {
	if m.passes(value) {
		return true, ""
	}
	return false, fmt.Sprintf("expected: %s\nactual value was: %s", m.describe(value), m.valueDescription(value))
}

// Assert tests a value and, on failure, calls assert.Fail with the appropriate message.
func (m Matcher[V]) Assert(t assert.TestingT, value V) bool {
	if pass, desc := m.Test(value); !pass {
		return assert.Fail(t, desc)
	}
	return true
}

// Require tests a value and, on failure, calls require.Fail with the appropriate message, which
// terminates the test.
func (m Matcher[V]) Require(t require.TestingT, value V) {
	if pass, desc := m.Test(value); !pass {
		require.Fail(t, desc)
	}
}

// WithValueDescription adds custom behavior for rendering the input value as a string in
// failure messages. If not specified, the default behavior is DefaultDescription.
func (m Matcher[V]) WithValueDescription(describeValue func(V) string) Matcher[V] {
	m.describeValue = describeValue
	return m
}

func (m Matcher[V]) passes(value V) bool {
	return m.test == nil || m.test(value)
}

func (m Matcher[V]) describe(value V) string {
	if m.describeFailure == nil {
		return "no test description given"
	}
	return m.describeFailure(value)
}

func (m Matcher[V]) valueDescription(value V) string {
	if m.describeValue != nil {
		return m.describeValue(value)
	}
	return DefaultDescription(value)
}

// DefaultDescription renders a value with its String method if it has one, or with the "%+v"
// format otherwise.
func DefaultDescription(value interface{}) string {
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%+v", value)
}
