package matchers

// MatcherTransform is a combinator that allows an input value to be transformed to some other
// value, possibly of a different type, before being tested by other Matchers.
//
// For instance, this could be used to access a field inside a struct. Assuming there is a struct
// type S with a field F:
//
//	SF := matchers.Transform("F", func(s S) int { return s.F })
//	SF.Should(matchers.Equal(3)).Assert(t, someInstanceOfS)
//
// If someInstanceOfS.F was really 4, the failure message would show:
//
//	expected: F equal to 3
//	actual value was: {F: 4}
type MatcherTransform[V, W any] struct {
	name     string
	getValue func(V) W
}

// Transform creates a MatcherTransform. The name is a brief description of what the output value
// is in relation to the input value; it is prefixed to the description of any Matcher used with
// Should.
func Transform[V, W any](name string, getValue func(V) W) MatcherTransform[V, W] {
	return MatcherTransform[V, W]{name: name, getValue: getValue}
}

// Should applies a Matcher to the transformed value.
func (mt MatcherTransform[V, W]) Should(matcher Matcher[W]) Matcher[V] {
	return New(
		func(value V) bool { return matcher.passes(mt.getValue(value)) },
		func(value V) string { return mt.name + " " + matcher.describe(mt.getValue(value)) },
	)
}
