// Package core defines the boundary contract between the keep-alive layer
// and the underlying MCP session/transport provider. It contains:
//
//   - Session / SessionProvider (what a transport must expose: create,
//     ping, liveness, close)
//   - SessionManager (the extension point an MCP client exposes for
//     substituting its session management)
//   - SessionKey derivation over normalized headers
//   - Connection parameter structs passed through to providers unchanged
//
// The package intentionally contains no transport implementation. Providers
// (stdio, SSE, streamable HTTP, ...) live outside this module and satisfy
// these interfaces; the keepalive package only consumes them.
package core
