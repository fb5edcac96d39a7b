package mcpkeepalive

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/mcpkeepalive/core"
	"github.com/hupe1980/mcpkeepalive/internal/testutil"
	"github.com/hupe1980/mcpkeepalive/keepalive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClient records the session-manager substitution.
type MockClient struct {
	mock.Mock
	provider core.SessionProvider
}

func NewMockClient(provider core.SessionProvider) *MockClient {
	return &MockClient{provider: provider}
}

func (m *MockClient) SessionProvider() core.SessionProvider { return m.provider }

func (m *MockClient) SetSessionManager(sm core.SessionManager) { m.Called(sm) }

func TestWrap_InstallsPingEnabledManager(t *testing.T) {
	provider := testutil.NewFakeProvider(testutil.NewFakeSession())
	client := NewMockClient(provider)
	client.On("SetSessionManager", mock.Anything).Once()

	kac := Wrap(client)

	client.AssertExpectations(t)

	installed := client.Calls[0].Arguments.Get(0).(core.SessionManager)
	assert.Same(t, kac.SessionManager(), installed,
		"the manager handed to the client is the one the wrapper owns")
}

func TestWrap_ForwardsPingInterval(t *testing.T) {
	client := NewMockClient(testutil.NewFakeProvider(testutil.NewFakeSession()))
	client.On("SetSessionManager", mock.Anything).Once()

	kac := Wrap(client, func(o *Options) {
		o.PingInterval = 30 * time.Second
	})

	assert.Equal(t, 30*time.Second, kac.SessionManager().PingInterval())
}

func TestWrap_DefaultPingInterval(t *testing.T) {
	client := NewMockClient(testutil.NewFakeProvider(testutil.NewFakeSession()))
	client.On("SetSessionManager", mock.Anything).Once()

	kac := Wrap(client)

	assert.Equal(t, keepalive.DefaultPingInterval, kac.SessionManager().PingInterval())
}

func TestKeepAliveClient_CloseClosesProvider(t *testing.T) {
	provider := testutil.NewFakeProvider(testutil.NewFakeSession())
	client := NewMockClient(provider)
	client.On("SetSessionManager", mock.Anything).Once()

	kac := Wrap(client)

	_, err := kac.SessionManager().CreateSession(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, kac.Close(context.Background()))
	assert.True(t, provider.Closed())
	assert.Equal(t, 0, kac.SessionManager().ActiveTasks())
}
