package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 20 * time.Second
)

// envelope is the wire format of every websocket frame: {type, ts, data}.
type envelope struct {
	Type string     `json:"type"`
	Ts   *time.Time `json:"ts,omitempty"`
	Data any        `json:"data,omitempty"`
}

func marshalEnvelope(typ string, at time.Time, data any) ([]byte, error) {
	if at.IsZero() {
		at = time.Now()
	}
	at = at.UTC()

	return json.Marshal(envelope{Type: typ, Ts: &at, Data: data})
}

// Hub tracks websocket clients and fans frames out to them.
// Clients that cannot keep up are disconnected.
type Hub struct {
	logger *slog.Logger

	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}

	mu      sync.Mutex
	clients map[*client]struct{}

	sendBuf int
}

// NewHub constructs a hub. Call Run to start it.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		broadcast:  make(chan []byte, 128),
		register:   make(chan *client, 16),
		unregister: make(chan *client, 16),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
		sendBuf:    32,
	}
}

// Run processes hub events until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	h.logger.Debug("ws hub starting")

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return nil

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("ws client registered", "remote_addr", c.remoteAddr, "clients", n)

		case c := <-h.unregister:
			h.remove(c, "unregister")

		case msg := <-h.broadcast:
			var slow []*client

			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.Unlock()

			for _, c := range slow {
				h.remove(c, "slow_client")
			}
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// Broadcast enqueues a frame for every client. It never blocks; a full
// queue drops the frame.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("ws hub queue full, dropping frame", "bytes", len(msg))
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		_ = c.conn.Close()
		c.closeSend()
		delete(h.clients, c)
	}
}

func (h *Hub) remove(c *client, reason string) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}

	_ = c.conn.Close()
	c.closeSend()

	h.logger.Info("ws client disconnected", "remote_addr", c.remoteAddr, "reason", reason, "clients", n)
}

var upgrader = websocket.Upgrader{
	// The mirror page is served from the same origin; CheckOrigin's default
	// same-host check applies.
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// serve upgrades the request, registers the client and queues hello as its
// first frame.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, hello []byte) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}

	c := &client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, h.sendBuf),
		remoteAddr: r.RemoteAddr,
		logger:     h.logger,
	}

	// Queued before registering so it is always the first frame.
	c.send <- hello

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	// The pumps outlive the request; the hub and socket errors end them.
	go c.writePump()
	go c.readPump()
}

type client struct {
	hub *Hub

	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once

	remoteAddr string
	logger     *slog.Logger
}

func (c *client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logExit("write", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logExit("ping", err)
				return
			}
		}
	}
}

// readPump discards inbound frames; it exists to notice disconnects and
// answer control frames.
func (c *client) readPump() {
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			c.logExit("read", err)

			select {
			case c.hub.unregister <- c:
			case <-c.hub.done:
			}

			return
		}
	}
}

func (c *client) logExit(op string, err error) {
	if errors.Is(err, websocket.ErrCloseSent) {
		return
	}

	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		c.logger.Debug("ws pump exiting", "op", op, "remote_addr", c.remoteAddr, "code", ce.Code, "reason", ce.Text)
		return
	}

	c.logger.Debug("ws pump exiting", "op", op, "remote_addr", c.remoteAddr, "error", err)
}
