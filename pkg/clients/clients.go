package clients

import (
	"fmt"
	"sync"

	"github.com/cbodonnell/lastone/pkg/log"
)

const (
	// SpectatorIDMaxRetries represents the maximum number of retries when generating a unique ID
	SpectatorIDMaxRetries = 1024
	// DefaultOutboxSize is the number of frames buffered for a spectator
	DefaultOutboxSize = 64
)

// Spectator represents a connected feed client. Frames sent to the spectator
// are delivered on Outbox, which is closed when the spectator is removed.
type Spectator struct {
	ID     uint32
	Outbox <-chan []byte
	outbox chan []byte
}

// SpectatorManager manages connected spectators
type SpectatorManager struct {
	spectators     map[uint32]*Spectator
	spectatorsLock sync.RWMutex
	nextID         uint32
	outboxSize     int
	events         *SpectatorEventManager
}

type NewSpectatorManagerOptions struct {
	OutboxSize int
	// Events is triggered on connect and disconnect when set
	Events *SpectatorEventManager
}

// NewSpectatorManager creates a new SpectatorManager
func NewSpectatorManager(opts NewSpectatorManagerOptions) *SpectatorManager {
	size := opts.OutboxSize
	if size <= 0 {
		size = DefaultOutboxSize
	}
	return &SpectatorManager{
		spectators: make(map[uint32]*Spectator),
		nextID:     1,
		outboxSize: size,
		events:     opts.Events,
	}
}

// AddSpectator registers a new spectator
func (sm *SpectatorManager) AddSpectator() (*Spectator, error) {
	sm.spectatorsLock.Lock()
	id, err := sm.GenerateUniqueID(SpectatorIDMaxRetries)
	if err != nil {
		sm.spectatorsLock.Unlock()
		return nil, fmt.Errorf("failed to generate a unique ID: %v", err)
	}
	outbox := make(chan []byte, sm.outboxSize)
	spectator := &Spectator{
		ID:     id,
		Outbox: outbox,
		outbox: outbox,
	}
	sm.spectators[id] = spectator
	sm.spectatorsLock.Unlock()

	if sm.events != nil {
		sm.events.Trigger(SpectatorEvent{SpectatorID: id, Type: SpectatorEventTypeConnect})
	}
	return spectator, nil
}

// RemoveSpectator removes a spectator from the manager and closes its outbox.
func (sm *SpectatorManager) RemoveSpectator(id uint32) {
	sm.spectatorsLock.Lock()
	spectator, exists := sm.spectators[id]
	if exists {
		delete(sm.spectators, id)
		close(spectator.outbox)
	}
	sm.spectatorsLock.Unlock()

	if exists && sm.events != nil {
		sm.events.Trigger(SpectatorEvent{SpectatorID: id, Type: SpectatorEventTypeDisconnect})
	}
}

// Send queues a frame for one spectator. It reports false when the spectator
// is unknown or its outbox is full.
func (sm *SpectatorManager) Send(id uint32, frame []byte) bool {
	sm.spectatorsLock.RLock()
	defer sm.spectatorsLock.RUnlock()
	spectator, ok := sm.spectators[id]
	if !ok {
		return false
	}
	select {
	case spectator.outbox <- frame:
		return true
	default:
		return false
	}
}

// Broadcast queues a frame for every spectator. Spectators that cannot keep
// up are removed.
func (sm *SpectatorManager) Broadcast(frame []byte) {
	var slow []uint32
	sm.spectatorsLock.RLock()
	for id, spectator := range sm.spectators {
		select {
		case spectator.outbox <- frame:
		default:
			slow = append(slow, id)
		}
	}
	sm.spectatorsLock.RUnlock()

	for _, id := range slow {
		log.Warn("Dropping spectator %d: outbox full", id)
		sm.RemoveSpectator(id)
	}
}

// Count returns the number of connected spectators
func (sm *SpectatorManager) Count() int {
	sm.spectatorsLock.RLock()
	defer sm.spectatorsLock.RUnlock()
	return len(sm.spectators)
}

func (sm *SpectatorManager) Exists(id uint32) bool {
	sm.spectatorsLock.RLock()
	defer sm.spectatorsLock.RUnlock()
	_, ok := sm.spectators[id]
	return ok
}

// GenerateUniqueID generates a unique spectator ID with a maximum number of retries
// it reads from the spectators, so it needs to be locked before calling
func (sm *SpectatorManager) GenerateUniqueID(maxRetries int) (uint32, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		id := sm.nextID
		sm.nextID++
		if id == 0 {
			continue
		}
		if _, ok := sm.spectators[id]; !ok {
			return id, nil
		}
	}

	return 0, fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}
