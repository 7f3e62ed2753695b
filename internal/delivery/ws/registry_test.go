package ws

import (
	"testing"

	"github.com/badgerly/badgerly-backend/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLastConnectionWins(t *testing.T) {
	reg := NewSessionRegistry()
	first := testClient("alice")
	second := testClient("alice")

	reg.Register(first)
	reg.Register(second)

	current, ok := reg.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, second, current)
}

func TestRegistryStaleUnregisterKeepsReplacement(t *testing.T) {
	reg := NewSessionRegistry()
	first := testClient("alice")
	second := testClient("alice")

	reg.Register(first)
	reg.Register(second)

	// the displaced connection's cleanup must not evict the new one
	reg.Unregister(first)
	current, ok := reg.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, second, current)

	reg.Unregister(second)
	_, ok = reg.Lookup("alice")
	assert.False(t, ok)
}

func TestRegistryDeliver(t *testing.T) {
	reg := NewSessionRegistry()
	alice := testClient("alice")
	reg.Register(alice)

	n := notification.Notification{Type: "challenge_invite", Title: "New challenge!"}
	assert.True(t, reg.Deliver("alice", n))
	assert.False(t, reg.Deliver("bob", n))

	events := drain(alice)
	require.Len(t, events, 1)
	assert.Equal(t, EventNotification, events[0].Event)
	assert.Equal(t, n, events[0].Data)
}
