package matchers

import (
	"fmt"
	"reflect"
	"strings"
)

// Equal is a matcher that tests whether the input value matches the expected value according
// to reflect.DeepEqual.
func Equal[V any](expectedValue V) Matcher[V] {
	return New(
		func(value V) bool { return reflect.DeepEqual(value, expectedValue) },
		func(V) string { return "equal to " + DefaultDescription(expectedValue) },
	)
}

// ContainsSubstring tests whether a string contains the specified substring.
func ContainsSubstring(substring string) Matcher[string] {
	return New(
		func(value string) bool { return strings.Contains(value, substring) },
		func(string) string { return fmt.Sprintf("contains %q", substring) },
	).WithValueDescription(func(value string) string { return fmt.Sprintf("%q", value) })
}

// Between tests whether an integer is within an inclusive range.
func Between(min, max int) Matcher[int] {
	return New(
		func(value int) bool { return value >= min && value <= max },
		func(int) string { return fmt.Sprintf("between %d and %d", min, max) },
	)
}
