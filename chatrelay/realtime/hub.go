package realtime

import (
	"encoding/json"
	"sync"

	"chatrelay/chatrelay/utils/types"

	"go.uber.org/zap"
)

// Hub tracks which connections have joined which rooms and fans events
// out to room members. Membership is process-local and dies with the
// connection; nothing here is persisted.
type Hub struct {
	mu sync.RWMutex

	// roomID -> members
	rooms map[int]map[*Client]struct{}
	// client -> joined roomIDs; doubles as the liveness set
	clients map[*Client]map[int]struct{}

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:   make(map[int]map[*Client]struct{}),
		clients: make(map[*Client]map[int]struct{}),
		logger:  logger,
	}
}

// Register makes the hub aware of a connection before it joins any room.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		h.clients[c] = make(map[int]struct{})
	}
}

// Join adds the connection to a room. Joining twice is a no-op.
func (h *Hub) Join(c *Client, roomID int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		// Disconnected concurrently; don't resurrect it.
		return
	}
	h.clients[c][roomID] = struct{}{}
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][c] = struct{}{}
}

// Leave removes the connection from one room.
func (h *Hub) Leave(c *Client, roomID int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoom(c, roomID)
	if joined, ok := h.clients[c]; ok {
		delete(joined, roomID)
	}
}

// Disconnect removes the connection from every room it occupies and
// closes its send channel. It is safe to call more than once; only the
// first call tears the client down.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	joined, ok := h.clients[c]
	if !ok {
		return
	}
	for roomID := range joined {
		h.removeFromRoom(c, roomID)
	}
	delete(h.clients, c)
	close(c.Send)
}

// removeFromRoom must run with mu held.
func (h *Hub) removeFromRoom(c *Client, roomID int) {
	members, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, roomID)
	}
}

// MembersOf snapshots the connections currently joined to a room.
func (h *Hub) MembersOf(roomID int) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	members := make([]*Client, 0, len(h.rooms[roomID]))
	for c := range h.rooms[roomID] {
		members = append(members, c)
	}
	return members
}

// BroadcastToRoom delivers the event to every current member of the
// room. A member that cannot keep up is logged and disconnected; the
// remaining deliveries and the caller are unaffected.
func (h *Hub) BroadcastToRoom(roomID int, evt types.OutboundEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("failed to marshal outbound event",
			zap.Int("room_id", roomID),
			zap.Error(err),
		)
		return
	}

	var stale []*Client
	h.mu.RLock()
	for c := range h.rooms[roomID] {
		select {
		case c.Send <- data:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.logger.Warn("dropping unresponsive room member",
			zap.Int("room_id", roomID),
			zap.String("client_id", c.ID.String()),
		)
		h.Disconnect(c)
	}
}
