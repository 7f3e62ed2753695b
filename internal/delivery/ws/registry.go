package ws

import (
	"sync"

	"github.com/badgerly/badgerly-backend/internal/notification"
)

// SessionRegistry tracks one live connection per user. A newer connection
// for the same user displaces the older one; the stale connection's cleanup
// cannot evict its replacement.
type SessionRegistry struct {
	mu    sync.RWMutex
	conns map[string]*Client
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		conns: make(map[string]*Client),
	}
}

func (r *SessionRegistry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c.UserID()] = c
}

// Unregister removes the client only if it is still the user's current
// connection.
func (r *SessionRegistry) Unregister(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.conns[c.UserID()]; ok && current == c {
		delete(r.conns, c.UserID())
	}
}

func (r *SessionRegistry) Lookup(userID string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[userID]
	return c, ok
}

// Deliver implements notification.InbandDeliverer: best-effort, reports
// whether the user had a connection to deliver to.
func (r *SessionRegistry) Deliver(userID string, n notification.Notification) bool {
	c, ok := r.Lookup(userID)
	if !ok {
		return false
	}
	c.Enqueue(OutEvent{Event: EventNotification, Data: n})
	return true
}
