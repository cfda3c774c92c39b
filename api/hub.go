package api

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/matt-g-everett/linefractal/stream"
)

const writeTimeout = time.Second

// Hub broadcasts binary frames to every connected websocket client.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub creates an instance of a Hub.
func NewHub() *Hub {
	h := new(Hub)
	h.conns = make(map[*websocket.Conn]struct{})
	return h
}

// ServeHTTP upgrades the request and keeps the client subscribed until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Println(err)
		return
	}

	ctx := c.CloseRead(r.Context())
	h.add(c)
	<-ctx.Done()
	h.remove(c)
	c.Close(websocket.StatusNormalClosure, "")
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Draw sends the frame to all clients. Clients that cannot keep up are
// dropped.
func (h *Hub) Draw(f *stream.Frame) error {
	h.mu.Lock()
	if len(h.conns) == 0 {
		h.mu.Unlock()
		return nil
	}
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}

	for _, c := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := c.Write(ctx, websocket.MessageBinary, b)
		cancel()
		if err != nil {
			log.Printf("dropping websocket client: %v", err)
			h.remove(c)
			c.CloseNow()
		}
	}
	return nil
}
