// Package mcpkeepalive keeps long-lived MCP client sessions alive across
// idle-timeout enforcing intermediaries (e.g. load balancers that drop
// connections idle for N seconds). Most applications interact with this
// package by:
//  1. Constructing their MCP client as usual
//  2. Wrapping it via Wrap(), optionally tuning the ping interval
//  3. Calling Close() on the wrapper during shutdown
//
// Wrap substitutes a ping-enabled session manager (keepalive.Manager) for
// whatever session management the client would otherwise use. Every session
// the client hands out afterwards carries a background ping loop; Close
// cancels and awaits all loops before closing the underlying provider. No
// other behavior of the wrapped client changes.
package mcpkeepalive

import (
	"context"
	"time"

	"github.com/hupe1980/mcpkeepalive/core"
	"github.com/hupe1980/mcpkeepalive/keepalive"
	"github.com/hupe1980/mcpkeepalive/logging"
)

// Client is the surface an underlying MCP-style client exposes to this
// package: access to the session provider built from its connection
// configuration, and a single well-defined extension point for substituting
// the session manager it uses internally.
type Client interface {
	// SessionProvider returns the provider the client constructed from its
	// own connection configuration.
	SessionProvider() core.SessionProvider

	// SetSessionManager installs the session manager the client routes all
	// session acquisition through.
	SetSessionManager(core.SessionManager)
}

// Options configure the keep-alive wrapper.
type Options struct {
	// PingInterval is the delay between keep-alive pings. It should sit
	// safely below the idle timeout of any intermediary on the path; the
	// default of 50s suits AWS ALB's default 60s timeout.
	PingInterval time.Duration

	// Logger receives ping-loop and shutdown diagnostics. Defaults to
	// NoOpLogger.
	Logger logging.Logger
}

// KeepAliveClient is an MCP client whose sessions are kept alive by a
// ping-enabled session manager. It exposes the wrapped client unchanged
// plus ownership of the manager's shutdown.
type KeepAliveClient struct {
	Client

	manager *keepalive.Manager
}

// Wrap builds a keepalive.Manager over client's own session provider and
// installs it through the client's extension point. The wrapped client is
// used exactly as before; the returned handle owns manager shutdown.
func Wrap(client Client, optFns ...func(o *Options)) *KeepAliveClient {
	opts := Options{
		PingInterval: keepalive.DefaultPingInterval,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	manager := keepalive.NewManager(client.SessionProvider(), func(o *keepalive.Options) {
		o.PingInterval = opts.PingInterval
		o.Logger = opts.Logger
	})

	client.SetSessionManager(manager)

	return &KeepAliveClient{Client: client, manager: manager}
}

// SessionManager returns the installed ping-enabled manager.
func (c *KeepAliveClient) SessionManager() *keepalive.Manager { return c.manager }

// Close cancels every ping loop, awaits each one and closes the underlying
// session provider. Call once during shutdown.
func (c *KeepAliveClient) Close(ctx context.Context) error {
	return c.manager.Close(ctx)
}
