package matchers

import (
	"fmt"
	"strings"
)

// Not negates the result of another Matcher.
//
//	matchers.Not(matchers.Equal(3)).Assert(t, 4)
//	// failure message will describe expectation as "not (equal to 3)"
func Not[V any](matcher Matcher[V]) Matcher[V] {
	return Matcher[V]{
		test: func(value V) bool { return !matcher.passes(value) },
		describeFailure: func(value V) string {
			return fmt.Sprintf("not (%s)", matcher.describe(value))
		},
		describeValue: matcher.describeValue,
	}
}

// AllOf requires that the input value passes all of the specified Matchers. If it fails,
// the failure message describes only the Matchers that failed.
func AllOf[V any](matchers ...Matcher[V]) Matcher[V] {
	ret := New(
		func(value V) bool {
			for _, m := range matchers {
				if !m.passes(value) {
					return false
				}
			}
			return true
		},
		func(value V) string {
			var fails []Matcher[V]
			for _, m := range matchers {
				if !m.passes(value) {
					fails = append(fails, m)
				}
			}
			return describeMatchersList(fails, value, " and ")
		},
	)
	if len(matchers) != 0 {
		ret.describeValue = matchers[0].describeValue
	}
	return ret
}

func describeMatchersList[V any](matchers []Matcher[V], value V, separator string) string {
	if len(matchers) == 1 {
		return matchers[0].describe(value)
	}
	parts := make([]string, 0, len(matchers))
	for _, m := range matchers {
		parts = append(parts, "("+m.describe(value)+")")
	}
	return strings.Join(parts, separator)
}
