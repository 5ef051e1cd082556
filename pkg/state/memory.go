package state

import (
	"context"
	"fmt"
	"sync"
)

type InMemoryStandingsManager struct {
	lock     sync.RWMutex
	snapshot *Snapshot
}

func NewInMemoryStandingsManager() *InMemoryStandingsManager {
	return &InMemoryStandingsManager{}
}

func (m *InMemoryStandingsManager) Get(ctx context.Context) (*Snapshot, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	return m.snapshot.Copy(), nil
}

func (m *InMemoryStandingsManager) Set(ctx context.Context, snapshot *Snapshot) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}

	m.snapshot = snapshot.Copy()
	return nil
}
