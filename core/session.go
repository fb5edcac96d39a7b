package core

import "context"

// Session is a live, stateful connection to a remote MCP endpoint. Sessions
// are obtained from and closed by a SessionProvider; callers and the
// keep-alive layer hold only non-owning references.
//
// A session may be used concurrently by application traffic and by its
// keep-alive ping loop. The loop issues nothing beyond IsDisconnected and
// SendPing, so implementations must tolerate (or document that they do not
// tolerate) one in-flight ping alongside normal use.
type Session interface {
	// SendPing issues a lightweight no-op request whose only purpose is to
	// generate traffic on the underlying connection. An error means the
	// session should be considered gone.
	SendPing(ctx context.Context) error

	// IsDisconnected reports best-effort liveness. It must not block.
	IsDisconnected() bool
}

// SessionProvider creates and owns sessions for one configured endpoint.
// It also owns the session-identity notion: SessionKey must return equal
// keys exactly when the provider would consider two creation requests to
// refer to the same logical session.
type SessionProvider interface {
	// CreateSession returns an initialized session for the given per-call
	// headers, creating one or handing back an existing one as the provider
	// sees fit. May block on network I/O; errors are provider-defined and
	// returned unchanged to callers.
	CreateSession(ctx context.Context, headers map[string]string) (Session, error)

	// SessionKey derives the deterministic key identifying the logical
	// session that CreateSession with the same headers would yield.
	// Implementations typically merge their base connection headers with
	// the per-call headers and apply DeriveKey.
	SessionKey(headers map[string]string) SessionKey

	// CloseAll closes every session the provider owns.
	CloseAll(ctx context.Context) error
}

// SessionManager is the extension point an MCP-style client exposes for
// substituting the component that hands out its sessions. The keepalive
// package provides the ping-enabled implementation.
type SessionManager interface {
	CreateSession(ctx context.Context, headers map[string]string) (Session, error)
	Close(ctx context.Context) error
}
