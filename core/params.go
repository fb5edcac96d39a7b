package core

import "time"

// ConnectionParams describes how a provider reaches its endpoint. The
// keep-alive layer never interprets these beyond BaseHeaders; concrete
// parameter values pass through to the provider unchanged.
type ConnectionParams interface {
	// BaseHeaders returns the headers applied to every session created with
	// these parameters, or nil when the transport carries none.
	BaseHeaders() map[string]string
}

// StdioConnectionParams configure a provider that spawns a local MCP server
// process and talks to it over stdin/stdout.
type StdioConnectionParams struct {
	Command string
	Args    []string
	Env     map[string]string
	WorkDir string
}

// BaseHeaders returns nil; stdio transports carry no headers.
func (StdioConnectionParams) BaseHeaders() map[string]string { return nil }

// SSEConnectionParams configure a provider using an HTTP server-sent-events
// endpoint.
type SSEConnectionParams struct {
	URL     string
	Headers map[string]string
	// Timeout bounds individual requests issued by the provider. Zero means
	// the provider's own default.
	Timeout time.Duration
}

// BaseHeaders returns the headers sent with every request on this endpoint.
func (p SSEConnectionParams) BaseHeaders() map[string]string { return p.Headers }

// StreamableHTTPConnectionParams configure a provider using the MCP
// streamable HTTP transport.
type StreamableHTTPConnectionParams struct {
	URL     string
	Headers map[string]string
	Timeout time.Duration
}

// BaseHeaders returns the headers sent with every request on this endpoint.
func (p StreamableHTTPConnectionParams) BaseHeaders() map[string]string { return p.Headers }
