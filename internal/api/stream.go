package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jmercer/vale/internal/sim"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// streamClient is one connected render client. Writes are serialized per
// connection.
type streamClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *streamClient) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// hub fans snapshots out to every connected stream client. Clients that
// fail a write are dropped.
type hub struct {
	mu      sync.Mutex
	clients map[*streamClient]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[*streamClient]struct{})}
}

func (h *hub) broadcast(snap sim.Snapshot) {
	h.mu.Lock()
	list := make([]*streamClient, 0, len(h.clients))
	for c := range h.clients {
		list = append(list, c)
	}
	h.mu.Unlock()

	for _, c := range list {
		if err := c.send(snap); err != nil {
			h.drop(c)
		}
	}
}

func (h *hub) drop(c *streamClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.conn.Close()
}

// handleStream upgrades the connection and registers it for snapshot
// broadcasts. The read loop exists only to notice disconnects.
func (h *hub) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("stream upgrade failed", "error", err)
		return
	}

	c := &streamClient{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	slog.Info("stream client connected", "clients", n)

	go func() {
		defer h.drop(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
