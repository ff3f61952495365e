package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Vovarama1992/docreader/internal/models"
)

type positionMsg struct {
	Type     string `json:"type"`
	ID       int64  `json:"id"`
	Position int    `json:"position"`
}

// Pump forwards position events to their owners' rooms until ctx is done
// or the channel closes.
func (h *Hub) Pump(ctx context.Context, events <-chan models.PositionEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			payload, err := json.Marshal(positionMsg{
				Type:     "position",
				ID:       ev.ID,
				Position: ev.Position,
			})
			if err != nil {
				log.Printf("[SEND][ERR] json marshal failed: %v", err)
				continue
			}

			h.SendToRoom(UserRoom(ev.UserID), payload)
		}
	}
}
