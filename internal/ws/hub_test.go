package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/model"
	"github.com/vikalpshakya/Ultimate-Bingo-game/internal/testutil"
)

func newTestClient(id model.ConnID) *Client {
	return newClient(id, nil, testutil.NopLogger())
}

func TestHubSendDeliversToRegisteredClient(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	client := newTestClient("conn-1")
	hub.register(client)

	hub.Send("conn-1", model.EventTurnChange, "alice")

	require.Len(t, client.send, 1)
	envelope := <-client.send
	assert.Equal(t, model.EventTurnChange, envelope.Event)
	assert.Equal(t, "alice", envelope.Data)
}

func TestHubSendToUnknownConnectionIsDropped(t *testing.T) {
	hub := NewHub(testutil.NopLogger())

	hub.Send("conn-unknown", model.EventTurnChange, "alice")
	// Nothing to assert beyond not panicking
}

func TestHubSendDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	client := newTestClient("conn-1")
	hub.register(client)

	for i := 0; i < sendBufferSize+10; i++ {
		hub.Send("conn-1", model.EventTurnChange, i)
	}

	assert.Len(t, client.send, sendBufferSize)
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	a := newTestClient("conn-a")
	b := newTestClient("conn-b")
	hub.register(a)
	hub.register(b)

	hub.Broadcast(model.EventJoined, []string{"alice", "bob"})

	require.Len(t, a.send, 1)
	require.Len(t, b.send, 1)
	assert.Equal(t, model.EventJoined, (<-a.send).Event)
	assert.Equal(t, model.EventJoined, (<-b.send).Event)
}

func TestHubUnregisterRemovesClient(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	client := newTestClient("conn-1")
	hub.register(client)
	require.Equal(t, 1, hub.ConnectionCount())

	hub.unregister(client)

	assert.Equal(t, 0, hub.ConnectionCount())
	hub.Send("conn-1", model.EventTurnChange, "alice")
	_, open := <-client.send
	assert.False(t, open, "send channel closed on unregister")
}

func TestHubUnregisterIgnoresStaleClient(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	old := newTestClient("conn-1")
	hub.register(old)
	hub.unregister(old)

	// A new client under the same id must not be torn down by a second
	// unregister of the old one
	replacement := newTestClient("conn-1")
	hub.register(replacement)
	hub.unregister(old)

	assert.Equal(t, 1, hub.ConnectionCount())
}
