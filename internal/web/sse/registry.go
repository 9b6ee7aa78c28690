package sse

import (
	"sync"
	"time"

	"github.com/oxturret/turretweb/internal/model"
)

const sendBuffer = 256

// Conn is one open event-stream connection. Writes go through a buffered
// channel so a slow client never blocks the sender.
type Conn struct {
	id          model.ConnectionID
	send        chan []byte
	connectedAt time.Time
}

// ID returns the connection's registry id.
func (c *Conn) ID() model.ConnectionID {
	return c.id
}

// Receive returns the connection's delivery channel.
func (c *Conn) Receive() <-chan []byte {
	return c.send
}

// Send queues a payload for delivery. It reports false when the client's
// buffer is full and the payload was dropped.
func (c *Conn) Send(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Registry assigns ids to open event-stream connections and resolves ids
// back to connections for fan-out.
type Registry struct {
	mu     sync.RWMutex
	conns  map[model.ConnectionID]*Conn
	nextID model.ConnectionID
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[model.ConnectionID]*Conn),
	}
}

// Add registers a new connection and returns it.
func (r *Registry) Add(now time.Time) *Conn {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	conn := &Conn{
		id:          r.nextID,
		send:        make(chan []byte, sendBuffer),
		connectedAt: now,
	}
	r.conns[conn.id] = conn
	return conn
}

// Remove drops a connection from the registry. Removing an unknown id is a
// no-op.
func (r *Registry) Remove(id model.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
}

// Get resolves a connection id, returning nil for ids that have gone away.
func (r *Registry) Get(id model.ConnectionID) *Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conns[id]
}

// Count returns the number of open connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Frame wraps a payload in a server-sent-event data frame.
func Frame(payload []byte) []byte {
	framed := make([]byte, 0, len(payload)+8)
	framed = append(framed, "data: "...)
	framed = append(framed, payload...)
	framed = append(framed, "\n\n"...)
	return framed
}
