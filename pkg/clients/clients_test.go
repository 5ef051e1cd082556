package clients

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectatorManager_Broadcast(t *testing.T) {
	sm := NewSpectatorManager(NewSpectatorManagerOptions{OutboxSize: 1})

	a, err := sm.AddSpectator()
	require.NoError(t, err)
	b, err := sm.AddSpectator()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, sm.Count())

	sm.Broadcast([]byte("one"))
	assert.Equal(t, []byte("one"), <-a.Outbox)

	// b never drained its outbox, so the second frame removes it
	sm.Broadcast([]byte("two"))
	assert.Equal(t, []byte("two"), <-a.Outbox)
	assert.False(t, sm.Exists(b.ID))
	assert.Equal(t, []byte("one"), <-b.Outbox)
	_, open := <-b.Outbox
	assert.False(t, open)
}

func TestSpectatorManager_Send(t *testing.T) {
	sm := NewSpectatorManager(NewSpectatorManagerOptions{OutboxSize: 1})
	s, err := sm.AddSpectator()
	require.NoError(t, err)

	assert.True(t, sm.Send(s.ID, []byte("x")))
	assert.False(t, sm.Send(s.ID, []byte("y")))
	assert.False(t, sm.Send(s.ID+100, []byte("z")))
}

func TestSpectatorManager_RemoveTwice(t *testing.T) {
	sm := NewSpectatorManager(NewSpectatorManagerOptions{})
	s, err := sm.AddSpectator()
	require.NoError(t, err)

	sm.RemoveSpectator(s.ID)
	sm.RemoveSpectator(s.ID)
	assert.Equal(t, 0, sm.Count())
}

func TestSpectatorManager_Events(t *testing.T) {
	events := NewSpectatorEventManager()
	got := make(chan SpectatorEvent, 2)
	events.RegisterHandler(func(event SpectatorEvent) {
		got <- event
	})

	sm := NewSpectatorManager(NewSpectatorManagerOptions{Events: events})
	s, err := sm.AddSpectator()
	require.NoError(t, err)
	sm.RemoveSpectator(s.ID)

	var types []SpectatorEventType
	for i := 0; i < 2; i++ {
		select {
		case event := <-got:
			assert.Equal(t, s.ID, event.SpectatorID)
			types = append(types, event.Type)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for spectator event")
		}
	}
	assert.ElementsMatch(t, []SpectatorEventType{SpectatorEventTypeConnect, SpectatorEventTypeDisconnect}, types)
}
