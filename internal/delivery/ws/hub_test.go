package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/docreader/internal/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WSHandler(hub, func(ctx context.Context) *models.Session {
			if r.URL.Query().Get("uid") == "7" {
				return &models.Session{UserID: 7}
			}
			return nil
		})(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, query string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?" + query
	return websocket.DefaultDialer.Dial(u, nil)
}

func TestUserRoom(t *testing.T) {
	assert.Equal(t, "user:42", UserRoom(42))
}

func TestWSHandler_RejectsAnonymous(t *testing.T) {
	srv := startServer(t, NewHub())

	_, resp, err := dial(t, srv, "")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPump_DeliversToOwnerRoom(t *testing.T) {
	hub := NewHub()
	srv := startServer(t, hub)

	conn, _, err := dial(t, srv, "uid=7")
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.RoomSize(UserRoom(7)) == 1 }, time.Second, 10*time.Millisecond)

	events := make(chan models.PositionEvent, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Pump(ctx, events)

	// another user's event must not arrive
	events <- models.PositionEvent{UserID: 8, ID: 1, Position: 5}
	events <- models.PositionEvent{UserID: 7, ID: 11, Position: 42}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg map[string]any
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "position", msg["type"])
	assert.EqualValues(t, 11, msg["id"])
	assert.EqualValues(t, 42, msg["position"])
}

func TestHub_UnregisterOnDisconnect(t *testing.T) {
	hub := NewHub()
	srv := startServer(t, hub)

	conn, _, err := dial(t, srv, "uid=7")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.RoomSize(UserRoom(7)) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.RoomSize(UserRoom(7)) == 0 }, time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, hub.SendToRoom(UserRoom(7), []byte(`{}`)))
}

func TestPump_StopsWhenChannelCloses(t *testing.T) {
	hub := NewHub()
	events := make(chan models.PositionEvent)
	done := make(chan struct{})

	go func() {
		hub.Pump(context.Background(), events)
		close(done)
	}()
	close(events)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop")
	}
}
