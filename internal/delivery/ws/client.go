package ws

import (
	"sync"
	"time"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 32
)

// Client is one authenticated live connection.
type Client struct {
	conn *websocket.Conn
	user *domain.User
	send chan OutEvent

	closeOnce sync.Once
	done      chan struct{}
}

func newClient(conn *websocket.Conn, user *domain.User) *Client {
	return &Client{
		conn: conn,
		user: user,
		send: make(chan OutEvent, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *Client) UserID() string {
	return c.user.ID
}

// Enqueue queues an event for delivery. A slow consumer with a full buffer
// loses the event rather than blocking the sender.
func (c *Client) Enqueue(ev OutEvent) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// writePump drains the send queue onto the connection and keeps it alive
// with pings. One writer per connection; gorilla conns do not allow
// concurrent writes.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case ev := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
