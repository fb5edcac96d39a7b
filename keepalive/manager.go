package keepalive

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/mcpkeepalive/core"
	"github.com/hupe1980/mcpkeepalive/logging"
)

// DefaultPingInterval is chosen to sit below common load balancer idle
// timeouts (AWS ALB defaults to 60s).
const DefaultPingInterval = 50 * time.Second

// Options configure a Manager.
type Options struct {
	// PingInterval is the fixed delay between keep-alive pings on each
	// session. Non-positive values fall back to DefaultPingInterval.
	PingInterval time.Duration

	// Logger receives ping-loop and shutdown diagnostics. Defaults to
	// NoOpLogger.
	Logger logging.Logger
}

// Manager is a ping-enabled core.SessionManager. It delegates session
// acquisition to the wrapped provider and ensures exactly one background
// ping loop runs per logical session, deduplicated by the provider's
// session key.
type Manager struct {
	provider core.SessionProvider
	interval time.Duration
	logger   logging.Logger

	// mu guards tasks and closed; the registry is never touched without it.
	mu     sync.Mutex
	tasks  map[core.SessionKey]*task
	closed bool
}

// Interface compliance (compile-time assertion)
var _ core.SessionManager = (*Manager)(nil)

// NewManager wraps provider with keep-alive behavior.
func NewManager(provider core.SessionProvider, optFns ...func(o *Options)) *Manager {
	opts := Options{
		PingInterval: DefaultPingInterval,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.PingInterval <= 0 {
		opts.PingInterval = DefaultPingInterval
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Manager{
		provider: provider,
		interval: opts.PingInterval,
		logger:   opts.Logger,
		tasks:    make(map[core.SessionKey]*task),
	}
}

// PingInterval returns the configured delay between pings.
func (m *Manager) PingInterval() time.Duration { return m.interval }

// ActiveTasks reports the number of ping loops currently registered.
func (m *Manager) ActiveTasks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// CreateSession obtains a session from the wrapped provider and ensures a
// ping loop is running for its key. Provider errors propagate unchanged and
// start no loop. A second call resolving to the same key leaves the
// existing loop untouched; the session is returned either way.
//
// The caller's ctx governs only session acquisition. Ping loops carry their
// own lifetime, ended by session death or Close.
func (m *Manager) CreateSession(ctx context.Context, headers map[string]string) (core.Session, error) {
	session, err := m.provider.CreateSession(ctx, headers)
	if err != nil {
		return nil, err
	}

	key := m.provider.SessionKey(headers)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return session, nil
	}

	if _, ok := m.tasks[key]; !ok {
		loopCtx, cancel := context.WithCancel(context.Background())
		t := newTask(key, cancel)
		m.tasks[key] = t

		go m.pingLoop(loopCtx, session, t)

		m.logger.Debug("started ping task",
			"session_key", key.Short(),
			"task_id", t.id,
			"interval", m.interval,
		)
	}

	return session, nil
}

// pingLoop periodically pings one session until it disconnects, a ping
// fails, or ctx is cancelled. The delay is fixed per cycle: the next wait
// starts only after the previous ping returned, so a slow ping never causes
// a catch-up burst.
func (m *Manager) pingLoop(ctx context.Context, session core.Session, t *task) {
	defer close(t.done)
	defer m.remove(t)

	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			t.outcome = outcomeCancelled
			m.logger.Debug("ping loop cancelled",
				"session_key", t.key.Short(), "task_id", t.id, "pings", t.pings.Load())
			return
		case <-timer.C:
		}

		if session.IsDisconnected() {
			t.outcome = outcomeDisconnected
			m.logger.Debug("session disconnected, stopping ping loop",
				"session_key", t.key.Short(), "task_id", t.id)
			return
		}

		n := t.pings.Add(1)
		if err := session.SendPing(ctx); err != nil {
			if ctx.Err() != nil {
				t.outcome = outcomeCancelled
				m.logger.Debug("ping loop cancelled mid-ping",
					"session_key", t.key.Short(), "task_id", t.id, "pings", n)
			} else {
				// Session is likely gone; not retried.
				t.outcome = outcomePingFailed
				t.err = err
				m.logger.Debug("ping failed, stopping ping loop",
					"session_key", t.key.Short(), "task_id", t.id, "error", err)
			}
			return
		}

		m.logger.Debug("ping sent",
			"session_key", t.key.Short(), "task_id", t.id, "ping", n)

		timer.Reset(m.interval)
	}
}

// remove deletes t's registry entry. No-op when the entry was already
// cleared by Close or replaced by a newer task for the same key.
func (m *Manager) remove(t *task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.tasks[t.key]; ok && cur == t {
		delete(m.tasks, t.key)
	}
}

// Close cancels every ping loop, awaits each one, then closes the wrapped
// provider. The registry is snapshotted and cleared up front so no loop can
// re-insert itself afterwards. Loops that ended with a ping failure are
// logged as warnings, never returned; the only error Close reports is the
// provider's own CloseAll error. Close may take as long as the slowest
// in-flight ping, since cancellation is cooperative.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	snapshot := m.tasks
	m.tasks = make(map[core.SessionKey]*task)
	m.closed = true
	m.mu.Unlock()

	for _, t := range snapshot {
		t.cancel()
		<-t.done

		if t.outcome == outcomePingFailed && t.err != nil {
			m.logger.Warn("ping task ended with error during shutdown",
				"session_key", t.key.Short(), "task_id", t.id, "error", t.err)
		}
	}

	// Cancelling first avoids pinging sessions the provider is tearing down.
	return m.provider.CloseAll(ctx)
}
