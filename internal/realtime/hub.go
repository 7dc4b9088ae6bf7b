// Package realtime pushes change notifications to connected dashboard clients
// over websockets. Delivery is fire-and-forget: a slow or disconnected client
// simply misses the message and relies on its periodic poll instead.
package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// event is the wire shape sent to clients; listeners refetch the named resource.
type event struct {
	Resource string `json:"resource"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan event
}

// Hub fans change notifications out to every connected client.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	log     *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		log:     log,
	}
}

// Notify broadcasts a resource category to all connected clients. Never blocks:
// clients with a full send buffer drop the message.
func (h *Hub) Notify(category string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- event{Resource: category}:
		default:
			h.log.Debugw("dropping notification for slow client", "client", c.id, "resource", category)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and registers the connection with the hub.
func (h *Hub) ServeWS() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			h.log.Errorw("websocket upgrade failed", "error", err)
			return
		}

		c := &client{
			id:   uuid.New().String(),
			conn: conn,
			send: make(chan event, sendBufferSize),
		}
		h.register(c)
		h.log.Infow("websocket client connected", "client", c.id)

		go h.writePump(c)
		go h.readPump(c)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// readPump discards inbound messages; it exists to notice disconnects and
// answer pings.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		h.log.Infow("websocket client disconnected", "client", c.id)
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case ev, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
