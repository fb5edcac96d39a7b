package keepalive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/mcpkeepalive/core"
	"github.com/hupe1980/mcpkeepalive/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testInterval keeps loop tests fast while leaving room for scheduler jitter.
const testInterval = 50 * time.Millisecond

func newTestManager(provider core.SessionProvider, interval time.Duration) *Manager {
	return NewManager(provider, func(o *Options) {
		o.PingInterval = interval
	})
}

func drained(m *Manager) func() bool {
	return func() bool { return m.ActiveTasks() == 0 }
}

func TestDefaultPingInterval(t *testing.T) {
	// Must sit below AWS ALB's default 60s idle timeout.
	assert.Less(t, DefaultPingInterval, 60*time.Second)
	assert.Positive(t, DefaultPingInterval)
}

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager(testutil.NewFakeProvider(testutil.NewFakeSession()))
	assert.Equal(t, DefaultPingInterval, m.PingInterval())

	m = newTestManager(testutil.NewFakeProvider(testutil.NewFakeSession()), -time.Second)
	assert.Equal(t, DefaultPingInterval, m.PingInterval(), "non-positive interval falls back to default")
}

func TestManager_PingCadence(t *testing.T) {
	sess := testutil.NewFakeSession()
	m := newTestManager(testutil.NewFakeProvider(sess), testInterval)

	_, err := m.CreateSession(context.Background(), nil)
	require.NoError(t, err)

	time.Sleep(testInterval*3 + testInterval/5)

	n := sess.PingCount()
	assert.GreaterOrEqual(t, n, 2, "expected at least 2 pings over ~3 intervals")
	assert.LessOrEqual(t, n, 3)

	require.NoError(t, m.Close(context.Background()))
}

func TestManager_IdempotentStart(t *testing.T) {
	sess := testutil.NewFakeSession()
	provider := testutil.NewFakeProvider(sess)
	// Long interval: no ping loop iteration runs during the test.
	m := newTestManager(provider, time.Hour)

	headers := map[string]string{"Authorization": "Bearer x"}

	_, err := m.CreateSession(context.Background(), headers)
	require.NoError(t, err)
	_, err = m.CreateSession(context.Background(), headers)
	require.NoError(t, err)

	assert.Equal(t, 1, m.ActiveTasks(), "same key must not start a second loop")
	assert.Equal(t, 2, provider.Creates(), "session acquisition itself is always delegated")

	require.NoError(t, m.Close(context.Background()))
}

func TestManager_DistinctKeysGetDistinctTasks(t *testing.T) {
	m := newTestManager(testutil.NewFakeProvider(testutil.NewFakeSession()), time.Hour)

	_, err := m.CreateSession(context.Background(), map[string]string{"X-Tenant": "acme"})
	require.NoError(t, err)
	_, err = m.CreateSession(context.Background(), map[string]string{"X-Tenant": "globex"})
	require.NoError(t, err)

	assert.Equal(t, 2, m.ActiveTasks())

	require.NoError(t, m.Close(context.Background()))
}

func TestManager_StopsWhenDisconnected(t *testing.T) {
	sess := testutil.NewFakeSession().DisconnectAfterChecks(2)
	m := newTestManager(testutil.NewFakeProvider(sess), testInterval)

	_, err := m.CreateSession(context.Background(), nil)
	require.NoError(t, err)

	assert.Eventually(t, drained(m), time.Second, 10*time.Millisecond,
		"loop should end within one interval of the disconnected check")
	assert.LessOrEqual(t, sess.PingCount(), 1, "no ping after the disconnected check")

	require.NoError(t, m.Close(context.Background()))
}

func TestManager_StopsOnPingError(t *testing.T) {
	sess := testutil.NewFakeSession().FailPingAt(1, errors.New("broken pipe"))
	m := newTestManager(testutil.NewFakeProvider(sess), testInterval)

	_, err := m.CreateSession(context.Background(), nil)
	require.NoError(t, err)

	assert.Eventually(t, drained(m), time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, sess.PingCount(), "a failed ping is never retried")

	time.Sleep(3 * testInterval)
	assert.Equal(t, 1, sess.PingCount(), "no attempt after the failing one")

	require.NoError(t, m.Close(context.Background()))
}

func TestManager_CreateSessionErrorPropagates(t *testing.T) {
	errBoom := errors.New("connect refused")
	provider := testutil.NewFakeProvider(testutil.NewFakeSession()).WithCreateError(errBoom)
	m := newTestManager(provider, testInterval)

	_, err := m.CreateSession(context.Background(), nil)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, m.ActiveTasks(), "no loop starts when creation fails")
}

func TestManager_CloseStopsAllPinging(t *testing.T) {
	sess := testutil.NewFakeSession()
	m := newTestManager(testutil.NewFakeProvider(sess), testInterval)

	_, err := m.CreateSession(context.Background(), map[string]string{"X-Tenant": "acme"})
	require.NoError(t, err)
	_, err = m.CreateSession(context.Background(), map[string]string{"X-Tenant": "globex"})
	require.NoError(t, err)
	require.Equal(t, 2, m.ActiveTasks())

	require.NoError(t, m.Close(context.Background()))

	assert.Equal(t, 0, m.ActiveTasks())

	n := sess.PingCount()
	time.Sleep(3 * testInterval)
	assert.Equal(t, n, sess.PingCount(), "zero pings after Close returned")
}

func TestManager_CloseClosesProvider(t *testing.T) {
	provider := testutil.NewFakeProvider(testutil.NewFakeSession())
	m := newTestManager(provider, time.Hour)

	_, err := m.CreateSession(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, m.Close(context.Background()))
	assert.True(t, provider.Closed())
}

func TestManager_CloseCancelsInFlightPing(t *testing.T) {
	sess := testutil.NewFakeSession()
	release := sess.BlockPings()
	defer release()

	m := newTestManager(testutil.NewFakeProvider(sess), 20*time.Millisecond)

	_, err := m.CreateSession(context.Background(), nil)
	require.NoError(t, err)

	// Wait until the loop is parked inside SendPing.
	require.Eventually(t, func() bool { return sess.PingCount() >= 1 },
		time.Second, 5*time.Millisecond)

	tk := m.snapshotTask(t)

	require.NoError(t, m.Close(context.Background()))

	require.True(t, tk.finished())
	assert.Equal(t, outcomeCancelled, tk.outcome,
		"cancellation mid-ping is shutdown, not a ping failure")
	assert.Equal(t, 0, m.ActiveTasks())
}

func TestManager_CreateAfterCloseStartsNoLoop(t *testing.T) {
	m := newTestManager(testutil.NewFakeProvider(testutil.NewFakeSession()), testInterval)
	require.NoError(t, m.Close(context.Background()))

	sess, err := m.CreateSession(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, sess, "the session itself is still returned")
	assert.Equal(t, 0, m.ActiveTasks())
}

func TestManager_RegistryEmptyOnEveryTerminationPath(t *testing.T) {
	tests := []struct {
		name  string
		sess  func() *testutil.FakeSession
		drive func(t *testing.T, m *Manager)
	}{
		{
			name: "disconnect",
			sess: func() *testutil.FakeSession { return testutil.NewFakeSession().DisconnectAfterChecks(1) },
			drive: func(t *testing.T, m *Manager) {
				assert.Eventually(t, drained(m), time.Second, 10*time.Millisecond)
			},
		},
		{
			name: "ping error",
			sess: func() *testutil.FakeSession {
				return testutil.NewFakeSession().FailPingAt(1, errors.New("eof"))
			},
			drive: func(t *testing.T, m *Manager) {
				assert.Eventually(t, drained(m), time.Second, 10*time.Millisecond)
			},
		},
		{
			name:  "forced cancellation",
			sess:  func() *testutil.FakeSession { return testutil.NewFakeSession() },
			drive: func(t *testing.T, m *Manager) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(testutil.NewFakeProvider(tt.sess()), testInterval)

			_, err := m.CreateSession(context.Background(), nil)
			require.NoError(t, err)

			tt.drive(t, m)

			require.NoError(t, m.Close(context.Background()))
			assert.Equal(t, 0, m.ActiveTasks())
		})
	}
}

// snapshotTask returns the single registered task; the registry is guarded,
// tests read it the same way the manager does.
func (m *Manager) snapshotTask(t *testing.T) *task {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.Len(t, m.tasks, 1)
	for _, tk := range m.tasks {
		return tk
	}
	return nil
}
