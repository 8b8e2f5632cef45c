package e2etest

import (
	"errors"
	"testing"

	"github.com/gdplabs/e2e-test-harness/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestScopeInheritsConfiguration(t *testing.T) {
	myContextValue := "hi"
	myCapabilities := framework.Capabilities{"a", "b"}
	config := TestConfiguration{
		Context:      myContextValue,
		Capabilities: myCapabilities,
	}
	_ = Run(config, func(et *T) {
		assert.Equal(t, myContextValue, et.Context())
		assert.Equal(t, myCapabilities, et.Capabilities())

		et.Run("subtest", func(et1 *T) {
			assert.Equal(t, myContextValue, et1.Context())
			assert.Equal(t, myCapabilities, et1.Capabilities())
		})
	})
}

func TestTestScopeExitsImmediatelyOnFailNow(t *testing.T) {
	executed1, executed2, executed3 := false, false, false
	_ = Run(TestConfiguration{}, func(et *T) {
		et.Run("", func(et *T) {
			executed1 = true
			et.FailNow()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopeExitsImmediatelyOnSkip(t *testing.T) {
	executed1, executed2, executed3 := false, false, false
	_ = Run(TestConfiguration{}, func(et *T) {
		et.Run("", func(et *T) {
			executed1 = true
			et.Skip()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopePassedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(et *T) {
		et.Run("parent", func(et0 *T) {
			et0.Run("subtest1", func(*T) {})
			et0.Run("subtest2", func(*T) {})
		})
	})

	assert.True(t, result.OK())
	require.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Nil(t, result.Tests[3].TestID)
	for _, r := range result.Tests {
		assert.Len(t, r.Errors, 0)
	}
}

func TestTestScopeFailedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(et *T) {
		et.Run("parent", func(et0 *T) {
			et0.Run("subtest1", func(*T) {})
			et0.Run("subtest2", func(et2 *T) {
				et2.Errorf("failed because %s", "reasons")
				et2.Errorf("and failed some more")
			})
			et0.Errorf("and parent failed")
		})
	})

	assert.False(t, result.OK())
	require.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 2)

	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	require.Len(t, result.Tests[1].Errors, 2)
	assert.Equal(t, "failed because reasons", result.Tests[1].Errors[0].Error())
	assert.Equal(t, "and failed some more", result.Tests[1].Errors[1].Error())

	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	require.Len(t, result.Tests[2].Errors, 1)
	assert.Equal(t, "and parent failed", result.Tests[2].Errors[0].Error())
}

func TestTestScopeSkippedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(et *T) {
		et.Run("parent", func(et0 *T) {
			et0.Run("subtest1", func(et1 *T) {
				et1.Skip()
			})
			et0.Run("subtest2", func(et2 *T) {
				et2.SkipWithReason("why not")
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 2)
	assert.Equal(t, []TestID{{"parent", "subtest1"}, {"parent", "subtest2"}}, result.Skipped)
}

func TestRequireCapabilitySkipsWhenMissing(t *testing.T) {
	logger := &recordingTestLogger{}
	result := Run(TestConfiguration{Capabilities: framework.Capabilities{"pages"}, TestLogger: logger},
		func(et *T) {
			et.Run("has it", func(et1 *T) { et1.RequireCapability("pages") })
			et.Run("lacks it", func(et1 *T) {
				et1.RequireCapability("firefox")
				et1.Errorf("should not get here")
			})
		})

	assert.True(t, result.OK())
	assert.Equal(t, []TestID{{"lacks it"}}, result.Skipped)
	assert.Equal(t, []string{`lacks it: driver does not have capability "firefox"`}, logger.skipped)
}

func TestTestScopeFilter(t *testing.T) {
	filter := FilterFunc(func(id TestID) bool {
		return len(id) == 0 || id[0] == "b"
	})

	result := Run(TestConfiguration{Filter: filter}, func(et *T) {
		et.Run("a", func(et0 *T) {
			et0.Run("sub1a", func(*T) {})
		})
		et.Run("b", func(et0 *T) {
			et0.Run("sub1b", func(*T) {})
			et0.Run("sub2b", func(*T) {})
		})
	})

	assert.True(t, result.OK())
	require.Len(t, result.Tests, 4)
	assert.Equal(t, TestID{"b", "sub1b"}, result.Tests[0].TestID)
	assert.Equal(t, TestID{"b", "sub2b"}, result.Tests[1].TestID)
	assert.Equal(t, TestID{"b"}, result.Tests[2].TestID)
	assert.Equal(t, TestID(nil), result.Tests[3].TestID)
}

func TestDeferredCleanupsRunInReverseOrder(t *testing.T) {
	var calls []string
	_ = Run(TestConfiguration{}, func(et *T) {
		et.Run("a", func(et1 *T) {
			et1.Defer(func() { calls = append(calls, "first") })
			et1.Defer(func() { calls = append(calls, "second") })
			et1.FailNow()
		})
	})
	assert.Equal(t, []string{"second", "first"}, calls)
}

func TestDeferredCleanupsRunAfterSkip(t *testing.T) {
	ran := false
	result := Run(TestConfiguration{}, func(et *T) {
		et.Run("a", func(et1 *T) {
			et1.Defer(func() { ran = true })
			et1.Skip()
		})
	})
	assert.True(t, ran)
	assert.True(t, result.OK())
}

func TestPanicInCleanupIsFailureButOtherCleanupsRun(t *testing.T) {
	ran := false
	result := Run(TestConfiguration{}, func(et *T) {
		et.Run("a", func(et1 *T) {
			et1.Defer(func() { ran = true })
			et1.Defer(func() { panic(errors.New("boom")) })
		})
	})
	assert.True(t, ran)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Errors[0].Error(), "unexpected panic in cleanup: boom")
}

func TestUnexpectedPanicIsFailure(t *testing.T) {
	result := Run(TestConfiguration{}, func(et *T) {
		et.Run("a", func(*T) {
			var m map[string]int
			m["x"] = 1
		})
	})
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Errors[0].Error(), "unexpected panic in test")
}

func TestDebugOutputIsPassedToLogger(t *testing.T) {
	logger := &recordingTestLogger{}
	_ = Run(TestConfiguration{TestLogger: logger}, func(et *T) {
		et.Run("a", func(et1 *T) {
			et1.Debug("hello %d", 1)
		})
	})
	require.Len(t, logger.finished, 1)
	require.Len(t, logger.finished[0], 1)
	assert.Equal(t, "hello 1", logger.finished[0][0].Message)
}

type recordingTestLogger struct {
	skipped  []string
	finished []framework.CapturedOutput
}

func (r *recordingTestLogger) TestStarted(TestID)      {}
func (r *recordingTestLogger) TestError(TestID, error) {}
func (r *recordingTestLogger) TestFinished(_ TestID, _ TestResult, out framework.CapturedOutput) {
	r.finished = append(r.finished, out)
}
func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.skipped = append(r.skipped, id.String()+": "+reason)
}
