package testutil

import (
	"context"
	"sync"

	"github.com/hupe1980/mcpkeepalive/core"
)

// FakeProvider is a core.SessionProvider handing out pre-built fake
// sessions, keyed the same way a real provider would: base headers merged
// with per-call headers, fingerprinted with core.DeriveKey.
type FakeProvider struct {
	mu          sync.Mutex
	session     *FakeSession
	createErr   error
	creates     int
	closed      bool
	baseHeaders map[string]string
}

// Interface compliance (compile-time assertions)
var (
	_ core.Session         = (*FakeSession)(nil)
	_ core.SessionProvider = (*FakeProvider)(nil)
)

// NewFakeProvider creates a provider that returns session from every
// CreateSession call.
func NewFakeProvider(session *FakeSession) *FakeProvider {
	return &FakeProvider{session: session}
}

// WithBaseHeaders sets the connection-level headers merged into every key
// derivation (chainable).
func (p *FakeProvider) WithBaseHeaders(headers map[string]string) *FakeProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.baseHeaders = headers
	return p
}

// WithCreateError makes every CreateSession call fail with err (chainable).
func (p *FakeProvider) WithCreateError(err error) *FakeProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.createErr = err
	return p
}

// CreateSession implements core.SessionProvider.
func (p *FakeProvider) CreateSession(ctx context.Context, headers map[string]string) (core.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.creates++
	return p.session, nil
}

// SessionKey implements core.SessionProvider.
func (p *FakeProvider) SessionKey(headers map[string]string) core.SessionKey {
	p.mu.Lock()
	base := p.baseHeaders
	p.mu.Unlock()
	return core.DeriveKey(core.MergeHeaders(base, headers))
}

// CloseAll implements core.SessionProvider.
func (p *FakeProvider) CloseAll(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Creates returns the number of successful CreateSession calls.
func (p *FakeProvider) Creates() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.creates
}

// Closed reports whether CloseAll was called.
func (p *FakeProvider) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
