// Package logging provides a minimal logging interface and adapters for the
// keep-alive layer.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) used for ping-loop and shutdown diagnostics. This package
// includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewLogger(logging.LogLevelDebug, "text")
//	mgr := keepalive.NewManager(provider, func(o *keepalive.Options) {
//		o.Logger = logger
//	})
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
