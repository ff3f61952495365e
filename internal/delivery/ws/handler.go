package ws

import (
	"context"
	"log"
	"net/http"

	"github.com/Vovarama1992/docreader/internal/models"
)

// SessionFunc resolves the session attached to a request context.
type SessionFunc func(ctx context.Context) *models.Session

// WSHandler subscribes the caller's socket to their own room. The client
// only listens; anything it sends is read and discarded until it hangs up.
func WSHandler(hub *Hub, sessionOf SessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		session := sessionOf(r.Context())
		if session == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[WS] upgrade fail user=%d err=%v", session.UserID, err)
			return
		}

		roomID := UserRoom(session.UserID)
		log.Printf("[WS] start room=%s", roomID)
		hub.Register(roomID, conn)

		defer func() {
			log.Printf("[WS] end room=%s", roomID)
			hub.Unregister(roomID, conn)
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
