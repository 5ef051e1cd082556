package clients

import (
	"sync"
)

type SpectatorEventType int

const (
	SpectatorEventTypeConnect SpectatorEventType = iota
	SpectatorEventTypeDisconnect
)

type SpectatorEvent struct {
	SpectatorID uint32
	Type        SpectatorEventType
}

type SpectatorEventHandler func(event SpectatorEvent)

type SpectatorEventManager struct {
	lock     sync.Mutex
	handlers []SpectatorEventHandler
}

func NewSpectatorEventManager() *SpectatorEventManager {
	return &SpectatorEventManager{}
}

// RegisterHandler registers a handler for events.
// The handler will be called in a goroutine.
func (em *SpectatorEventManager) RegisterHandler(handler SpectatorEventHandler) {
	em.lock.Lock()
	defer em.lock.Unlock()
	em.handlers = append(em.handlers, handler)
}

// Trigger triggers an event.
// All registered handlers will be called their own goroutine.
func (em *SpectatorEventManager) Trigger(event SpectatorEvent) {
	em.lock.Lock()
	defer em.lock.Unlock()
	for _, handler := range em.handlers {
		go handler(event)
	}
}
