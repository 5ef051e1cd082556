package messages

import (
	"encoding/json"
	"fmt"
)

type MessageType byte

// Message types published on the spectator feed
const (
	MessageTypeSetStarted MessageType = iota + 1
	MessageTypeMatchStarted
	MessageTypeMove
	MessageTypeMatchEnded
	MessageTypeSetEnded
	MessageTypeStandings
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeSetStarted:
		return "set_started"
	case MessageTypeMatchStarted:
		return "match_started"
	case MessageTypeMove:
		return "move"
	case MessageTypeMatchEnded:
		return "match_ended"
	case MessageTypeSetEnded:
		return "set_ended"
	case MessageTypeStandings:
		return "standings"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// Message represents a generic message for serialization/deserialization
type Message struct {
	Sequence uint32          `json:"sequence"`
	Type     MessageType     `json:"type"`
	Payload  json.RawMessage `json:"payload"`
}

// Event is queued by the tournament runner and turned into a Message by the
// broadcast worker.
type Event struct {
	Type    MessageType
	Payload interface{}
}

// NewMessage marshals the event payload into a message envelope.
func NewMessage(sequence uint32, event Event) (*Message, error) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %v", event.Type, err)
	}
	return &Message{
		Sequence: sequence,
		Type:     event.Type,
		Payload:  payload,
	}, nil
}
