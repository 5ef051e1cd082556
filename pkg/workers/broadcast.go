package workers

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cbodonnell/lastone/pkg/clients"
	"github.com/cbodonnell/lastone/pkg/log"
	"github.com/cbodonnell/lastone/pkg/messages"
	"github.com/cbodonnell/lastone/pkg/queue"
	"github.com/cbodonnell/lastone/pkg/state"
)

const (
	// DefaultBroadcastInterval is how often queued events are sent to spectators
	DefaultBroadcastInterval = 50 * time.Millisecond
)

// BroadcastEventWorker drains the event queue and sends every event to all
// spectators. Messages carry an increasing sequence starting at 1; the
// standings snapshot sent to a joining spectator has sequence 0.
type BroadcastEventWorker struct {
	eventQueue queue.Queue
	spectators *clients.SpectatorManager
	standings  state.StandingsManager
	interval   time.Duration
	sequence   atomic.Uint32
}

type NewBroadcastEventWorkerOptions struct {
	EventQueue queue.Queue
	Spectators *clients.SpectatorManager
	Standings  state.StandingsManager
	Interval   time.Duration
}

func NewBroadcastEventWorker(opts NewBroadcastEventWorkerOptions) *BroadcastEventWorker {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultBroadcastInterval
	}
	return &BroadcastEventWorker{
		eventQueue: opts.EventQueue,
		spectators: opts.Spectators,
		standings:  opts.Standings,
		interval:   interval,
	}
}

// Start runs until ctx is done. Events still queued at that point are sent
// before returning.
func (w *BroadcastEventWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.flush()
			return
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *BroadcastEventWorker) flush() {
	items, err := w.eventQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read events: %v", err)
		return
	}

	for _, item := range items {
		event, ok := item.(messages.Event)
		if !ok {
			log.Error("Unknown event type: %T", item)
			continue
		}
		frame, err := w.frame(w.sequence.Add(1), event)
		if err != nil {
			log.Error("Failed to build %s message: %v", event.Type, err)
			continue
		}
		w.spectators.Broadcast(frame)
	}
}

// HandleSpectatorEvent sends the current standings to a spectator that just
// joined, so it does not have to wait for the next match to end.
func (w *BroadcastEventWorker) HandleSpectatorEvent(event clients.SpectatorEvent) {
	if event.Type != clients.SpectatorEventTypeConnect || w.standings == nil {
		return
	}

	snapshot, err := w.standings.Get(context.Background())
	if err != nil {
		if !errors.Is(err, state.ErrNoSnapshot) {
			log.Error("Failed to get standings for spectator %d: %v", event.SpectatorID, err)
		}
		return
	}

	frame, err := w.frame(0, messages.Event{
		Type:    messages.MessageTypeStandings,
		Payload: StandingsPayload(snapshot),
	})
	if err != nil {
		log.Error("Failed to build standings message: %v", err)
		return
	}
	if !w.spectators.Send(event.SpectatorID, frame) {
		log.Warn("Failed to send standings to spectator %d", event.SpectatorID)
	}
}

func (w *BroadcastEventWorker) frame(sequence uint32, event messages.Event) ([]byte, error) {
	msg, err := messages.NewMessage(sequence, event)
	if err != nil {
		return nil, err
	}
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}
	return b, nil
}

// StandingsPayload converts a live snapshot into its feed payload.
func StandingsPayload(snapshot *state.Snapshot) *messages.Standings {
	payload := &messages.Standings{
		SetID:         snapshot.SetID,
		MatchesPlayed: snapshot.MatchesPlayed,
		BestOf:        snapshot.BestOf,
		Remaining:     snapshot.Remaining,
	}
	for _, s := range snapshot.Standings {
		payload.Standings = append(payload.Standings, messages.Standing{Seat: s.Seat, Name: s.Name, Losses: s.Losses})
	}
	return payload
}
