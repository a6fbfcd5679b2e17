package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wsConn is one live channel.
type wsConn struct {
	id    string // Random, for logs
	docID string
	ws    *websocket.Conn

	writeMu      sync.Mutex
	writeTimeout time.Duration
}

func (c *wsConn) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.ws.WriteJSON(v)
}

func (c *wsConn) close(code int, reason string) {
	c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(time.Second),
	)
	c.ws.Close()
}

// registry tracks open channels. The newest channel for a document is its
// current one; older channels stay open and keep getting their own replies.
type registry struct {
	mu      sync.Mutex
	all     map[string]*wsConn // conn id → conn
	current map[string]*wsConn // doc id → newest conn
}

func newRegistry() *registry {
	return &registry{
		all:     make(map[string]*wsConn),
		current: make(map[string]*wsConn),
	}
}

// add registers c and returns the channel it replaced as current, if any.
func (r *registry) add(c *wsConn) (replaced *wsConn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	replaced = r.current[c.docID]
	r.all[c.id] = c
	r.current[c.docID] = c
	return replaced
}

func (r *registry) remove(c *wsConn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.all, c.id)
	if r.current[c.docID] != c {
		return
	}
	delete(r.current, c.docID)
	// Fall back to another channel still open for the document.
	for _, other := range r.all {
		if other.docID == c.docID {
			r.current[c.docID] = other
			break
		}
	}
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.all)
}

func (r *registry) documents() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.current)
}

func (r *registry) closeAll(code int, reason string) {
	r.mu.Lock()
	conns := make([]*wsConn, 0, len(r.all))
	for _, c := range r.all {
		conns = append(conns, c)
	}
	r.mu.Unlock()

	for _, c := range conns {
		c.close(code, reason)
	}
}
