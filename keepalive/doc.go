// Package keepalive keeps MCP sessions alive across idle-timeout enforcing
// intermediaries (load balancers that drop connections idle for N seconds).
//
// Manager wraps a core.SessionProvider: every session it hands out gets
// exactly one background ping loop, keyed by the provider's session
// identity. A loop sleeps for the configured interval, checks liveness,
// sends a ping and repeats until the session disconnects, a ping fails, or
// the manager shuts down. Close cancels and awaits every loop before
// closing the underlying provider.
//
// The ping interval should sit safely below the intermediary's idle
// timeout, e.g. 50s for AWS ALB's default 60s.
package keepalive
