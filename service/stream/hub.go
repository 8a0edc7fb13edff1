// Package stream pushes auction events to websocket subscribers.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/base/metrics"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	// subscribers only send control frames
	maxReadSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	id   string
	send chan []byte
}

// Hub is an auction.Publisher that fans events out to every connected
// websocket. A subscriber whose buffer is full is dropped, never waited on.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	buffer  int
	met     metrics.Service
}

func NewHub(buffer int, met metrics.Service) *Hub {
	if buffer <= 0 {
		buffer = 64
	}
	if met == nil {
		met = metrics.Noop()
	}
	return &Hub{clients: map[*client]struct{}{}, buffer: buffer, met: met}
}

// Len is the number of connected subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) subscribe() *client {
	cl := &client{id: uuid.NewString(), send: make(chan []byte, h.buffer)}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	return cl
}

func (h *Hub) unsubscribe(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(cl)
}

func (h *Hub) dropLocked(cl *client) {
	if _, ok := h.clients[cl]; !ok {
		return
	}
	delete(h.clients, cl)
	close(cl.send)
}

func (h *Hub) Publish(c ctx.Ctx, events []auction.Envelope) error {
	payloads := make([][]byte, 0, len(events))
	for _, e := range events {
		val, err := json.Marshal(e)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "seq": e.Seq}).Error("json.Marshal failed")
			return err
		}
		payloads = append(payloads, val)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		for _, val := range payloads {
			select {
			case cl.send <- val:
				continue
			default:
			}
			c.WithField("client", cl.id).Warn("stream subscriber too slow, dropped")
			h.met.BumpSum("client.dropped", 1)
			h.dropLocked(cl)
			break
		}
	}
	return nil
}

// Serve upgrades the request and streams events until the peer goes away.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already answered the request
		return nil
	}
	cl := h.subscribe()
	h.met.BumpSum("client.connected", 1)

	go h.readPump(conn, cl)
	h.writePump(conn, cl)
	return nil
}

// readPump only keeps the read deadline moving; it unsubscribes on any error.
func (h *Hub) readPump(conn *websocket.Conn, cl *client) {
	defer func() {
		h.unsubscribe(cl)
		conn.Close()
	}()
	conn.SetReadLimit(maxReadSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(conn *websocket.Conn, cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()
	for {
		select {
		case val, ok := <-cl.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, val); err != nil {
				h.unsubscribe(cl)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unsubscribe(cl)
				return
			}
		}
	}
}
