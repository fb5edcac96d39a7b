package testutil

import (
	"context"
	"sync"
)

// FakeSession is a scriptable core.Session with fluent configuration.
// Example:
//
//	sess := NewFakeSession().DisconnectAfterChecks(2)
//	sess := NewFakeSession().FailPingAt(1, errors.New("broken pipe"))
type FakeSession struct {
	mu              sync.Mutex
	pings           int
	checks          int
	failAt          int // fail the Nth SendPing (1-based); 0 disables
	failErr         error
	disconnectAfter int // IsDisconnected true from the Nth check (1-based); 0 disables
	blockPing       chan struct{}
}

// NewFakeSession creates a session that stays connected and pings
// successfully until configured otherwise.
func NewFakeSession() *FakeSession {
	return &FakeSession{}
}

// FailPingAt makes the nth SendPing call (and every later one) return err (chainable).
func (s *FakeSession) FailPingAt(n int, err error) *FakeSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAt = n
	s.failErr = err
	return s
}

// DisconnectAfterChecks makes IsDisconnected return true from the nth
// liveness check onwards (chainable).
func (s *FakeSession) DisconnectAfterChecks(n int) *FakeSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnectAfter = n
	return s
}

// BlockPings makes SendPing block until the returned release function is
// called or the ping's context is cancelled (chainable setup, call once).
func (s *FakeSession) BlockPings() (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.blockPing = ch
	s.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// SendPing implements core.Session.
func (s *FakeSession) SendPing(ctx context.Context) error {
	s.mu.Lock()
	s.pings++
	n := s.pings
	block := s.blockPing
	failAt := s.failAt
	failErr := s.failErr
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if failAt > 0 && n >= failAt {
		return failErr
	}
	return nil
}

// IsDisconnected implements core.Session.
func (s *FakeSession) IsDisconnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks++
	return s.disconnectAfter > 0 && s.checks >= s.disconnectAfter
}

// PingCount returns the number of SendPing calls observed so far.
func (s *FakeSession) PingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pings
}

// CheckCount returns the number of IsDisconnected calls observed so far.
func (s *FakeSession) CheckCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checks
}
