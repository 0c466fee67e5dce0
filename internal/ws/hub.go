package ws

import "sync"

// Hub keeps connection sets per roomID. It only knows about sockets; who the
// sockets belong to is the liveroom state's business.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*room
}

func NewHub() *Hub { return &Hub{rooms: make(map[string]*room)} }

// Join adds the connection under h.mu so it cannot land in a room object a
// concurrent Leave has just garbage-collected out of the map.
func (h *Hub) Join(roomID string, c *clientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[roomID]
	if !ok {
		r = newRoom()
		h.rooms[roomID] = r
	}
	r.add(c)
}

// Leave drops the connection and garbage-collects the room once the last
// socket is gone. Removal and the empty-check happen under the same lock as
// Join, so a room is only deleted while it is provably memberless.
func (h *Hub) Leave(roomID string, c *clientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[roomID]
	if !ok {
		return
	}
	r.remove(c)
	if r.empty() {
		delete(h.rooms, roomID)
	}
}

func (h *Hub) Broadcast(roomID string, msg []byte) {
	h.broadcast(roomID, msg, nil)
}

func (h *Hub) BroadcastExcept(roomID string, msg []byte, skip *clientConn) {
	h.broadcast(roomID, msg, skip)
}

func (h *Hub) broadcast(roomID string, msg []byte, skip *clientConn) {
	h.mu.Lock()
	r, ok := h.rooms[roomID]
	h.mu.Unlock()
	if ok {
		r.broadcast(msg, skip)
	}
}

func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}
