// Package framework contains the low-level test harness infrastructure that is not specific to
// any one kind of end-to-end test. The base package holds shared types such as Logger and
// Capabilities; the test runner is in the e2etest subpackage, and general-purpose test helpers
// are in helpers, matchers, and opt.
//
// The general model is:
//
// 1. An automation engine (a browser driver, or something that can issue HTTP requests on our
// behalf) is started once per test and stopped when the test exits.
//
// 2. There is a general notion of a test scope which is similar to Go's testing.T, allowing
// pieces of test logic to be associated with a test identifier, to accumulate success/failure
// results, and to schedule cleanup work that runs however the test exits.
//
// The domain-specific code that knows what is being tested is responsible for building contexts
// on the engine, performing actions, and asserting on their results.
package framework
