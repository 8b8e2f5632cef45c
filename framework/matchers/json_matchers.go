package matchers

import (
	"fmt"
	"strings"

	"github.com/gdplabs/e2e-test-harness/framework/helpers"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// JSONProperty is a MatcherTransform that gets a property of a JSON object. A missing property, or
// an input that is not an object, produces ldvalue.Null().
//
//	matchers.JSONProperty("id").Should(matchers.ValueEqual(ldvalue.Int(1))).Assert(t, result)
func JSONProperty(name string) MatcherTransform[ldvalue.Value, ldvalue.Value] {
	return Transform(fmt.Sprintf("JSON property %q", name), func(value ldvalue.Value) ldvalue.Value {
		return value.GetByKey(name)
	})
}

// ValueEqual tests whether a JSON value is deeply equal to the expected one.
func ValueEqual(expected ldvalue.Value) Matcher[ldvalue.Value] {
	return New(
		func(value ldvalue.Value) bool { return value.Equal(expected) },
		func(ldvalue.Value) string { return "equal to " + helpers.CanonicalizedJSONString(expected) },
	).WithValueDescription(jsonValueDescription)
}

// ValueOfType tests whether a JSON value has the specified type.
func ValueOfType(valueType ldvalue.ValueType) Matcher[ldvalue.Value] {
	return New(
		func(value ldvalue.Value) bool { return value.Type() == valueType },
		func(ldvalue.Value) string { return "value of type " + valueType.String() },
	).WithValueDescription(jsonValueDescription)
}

// HasProperties tests whether a JSON object has every one of the specified property names,
// whatever their values.
func HasProperties(names ...string) Matcher[ldvalue.Value] {
	missing := func(value ldvalue.Value) []string {
		props := value.AsValueMap().AsMap()
		var ret []string
		for _, n := range names {
			if _, ok := props[n]; !ok {
				ret = append(ret, n)
			}
		}
		return ret
	}
	return New(
		func(value ldvalue.Value) bool {
			return value.Type() == ldvalue.ObjectType && len(missing(value)) == 0
		},
		func(value ldvalue.Value) string {
			if value.Type() != ldvalue.ObjectType {
				return "a JSON object"
			}
			return "object with properties " + strings.Join(missing(value), ", ")
		},
	).WithValueDescription(jsonValueDescription)
}

func jsonValueDescription(value ldvalue.Value) string {
	return helpers.CanonicalizedJSONString(value)
}
