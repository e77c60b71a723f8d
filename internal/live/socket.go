package live

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Socket wraps a websocket connection with a write lock so countdown
// ticks, location echoes and map commands can interleave safely.
type Socket struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewSocket wraps an upgraded connection.
func NewSocket(conn *websocket.Conn) *Socket {
	return &Socket{conn: conn}
}

// Send writes one JSON message.
func (s *Socket) Send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// ReadJSON reads the next inbound message into v.
func (s *Socket) ReadJSON(v any) error {
	return s.conn.ReadJSON(v)
}

// Close closes the underlying connection.
func (s *Socket) Close() error {
	return s.conn.Close()
}
