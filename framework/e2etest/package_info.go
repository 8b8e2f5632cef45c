// Package e2etest contains the test runner used by the end-to-end suite. It resembles Go's testing
// package, but runs as regular application code so that the harness binary can decide at runtime
// which tests to run, which driver capabilities are available, and how results are reported.
package e2etest
