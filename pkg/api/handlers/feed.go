package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/cbodonnell/lastone/pkg/clients"
	"github.com/cbodonnell/lastone/pkg/log"
	"nhooyr.io/websocket"
)

const (
	// FeedWriteTimeout bounds a single frame write to a spectator
	FeedWriteTimeout = 5 * time.Second
)

// HandleFeed upgrades the request to a websocket and streams the frames
// queued for the new spectator until either side goes away.
func HandleFeed(spectators *clients.SpectatorManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}
		defer conn.Close(websocket.StatusInternalError, "")

		spectator, err := spectators.AddSpectator()
		if err != nil {
			log.Error("Failed to add spectator: %v", err)
			conn.Close(websocket.StatusTryAgainLater, "too many spectators")
			return
		}
		defer spectators.RemoveSpectator(spectator.ID)
		log.Debug("Spectator %d connected from %s", spectator.ID, r.RemoteAddr)

		// spectators never send; CloseRead handles control frames and
		// cancels ctx when the peer leaves
		ctx := conn.CloseRead(r.Context())
		for {
			select {
			case <-ctx.Done():
				log.Debug("Spectator %d disconnected", spectator.ID)
				return
			case frame, ok := <-spectator.Outbox:
				if !ok {
					conn.Close(websocket.StatusPolicyViolation, "spectator too slow")
					return
				}
				if err := writeFrame(ctx, conn, frame); err != nil {
					log.Debug("Failed to write to spectator %d: %v", spectator.ID, err)
					return
				}
			}
		}
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, frame []byte) error {
	ctx, cancel := context.WithTimeout(ctx, FeedWriteTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageBinary, frame)
}
