package liveroom

import "sync"

type connInfo struct {
	roomID string
	userID string
}

// ConnRegistry maps a transport connection id to the (room, user) it joined
// as. It is the disconnect path's only way to know what to clean up.
type ConnRegistry struct {
	mu    sync.RWMutex
	conns map[string]connInfo
}

func NewConnRegistry() *ConnRegistry {
	return &ConnRegistry{conns: make(map[string]connInfo)}
}

// Register records the association made at join time. Called once per
// connection; a second call for the same id overwrites, which only happens
// when the client re-sends join-room with identical identity.
func (r *ConnRegistry) Register(connID, roomID, userID string) {
	r.mu.Lock()
	r.conns[connID] = connInfo{roomID: roomID, userID: userID}
	r.mu.Unlock()
}

func (r *ConnRegistry) Lookup(connID string) (roomID, userID string, ok bool) {
	r.mu.RLock()
	info, ok := r.conns[connID]
	r.mu.RUnlock()
	return info.roomID, info.userID, ok
}

// Unregister removes the association. Unknown ids are a no-op: the
// connection dropped before ever completing a join.
func (r *ConnRegistry) Unregister(connID string) {
	r.mu.Lock()
	delete(r.conns, connID)
	r.mu.Unlock()
}

func (r *ConnRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
