package ws

import "sync"

// Hub tracks challenge-room membership: which connections receive a given
// challenge's broadcasts. Access control happens before Join; the hub itself
// only manages fan-out sets.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Join(challengeID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[challengeID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[challengeID] = room
	}
	room[c] = struct{}{}
}

// Leave is idempotent; leaving a room never joined is a no-op.
func (h *Hub) Leave(challengeID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(challengeID, c)
}

// RemoveClient drops the client from every room, for disconnect cleanup.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for challengeID := range h.rooms {
		h.leaveLocked(challengeID, c)
	}
}

func (h *Hub) leaveLocked(challengeID string, c *Client) {
	room, ok := h.rooms[challengeID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, challengeID)
	}
}

// Broadcast fans an event out to every room member except the excluded
// client. No ordering guarantee relative to concurrent joins.
func (h *Hub) Broadcast(challengeID string, ev OutEvent, except *Client) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[challengeID]))
	for c := range h.rooms[challengeID] {
		if c != except {
			members = append(members, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range members {
		c.Enqueue(ev)
	}
}

// InRoom reports whether any of the user's connections are in the room.
func (h *Hub) InRoom(challengeID, userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[challengeID] {
		if c.UserID() == userID {
			return true
		}
	}
	return false
}

// MemberCount returns how many connections are in a room.
func (h *Hub) MemberCount(challengeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[challengeID])
}
