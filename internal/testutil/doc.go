// Package testutil contains scriptable fakes used across tests to exercise
// the keep-alive lifecycle without a real transport: a session whose
// liveness and ping behavior can be programmed per call, and a provider
// that records creations and shutdown. These helpers are intentionally
// minimal and are not intended for production usage.
package testutil
