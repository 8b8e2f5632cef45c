// Package internal contains test helpers for e2etest.
package internal

// RunAction is used only in unit tests. It lives in a separate package so that it shows up in
// stacktraces as code outside of e2etest.
func RunAction(action func()) {
	action()
}
