package liveroom

import "sync"

// JoinStatus reports what a Join call actually changed.
type JoinStatus int

const (
	// JoinedNewUser means this was the user's first connection in the room.
	JoinedNewUser JoinStatus = iota
	// JoinedExtraConn means the user was already present via another tab.
	JoinedExtraConn
	// AlreadyJoined means the exact (room, user, conn) triple existed; the
	// call was an idempotent no-op.
	AlreadyJoined
)

type JoinResult struct {
	Status      JoinStatus
	UniqueUsers int // distinct users now in the room, the broadcast metric
}

type LeaveResult struct {
	UserRemoved bool // the user's last connection is gone
	RoomRemoved bool // the room's last user is gone
	UniqueUsers int  // distinct users remaining
}

// MembershipTable tracks which users are in which room and through which
// connections. One user with two tabs counts as one; the whole point of the
// structure is that the participant count collapses multiple connections
// per user.
type MembershipTable struct {
	mu    sync.RWMutex
	rooms map[string]map[string]map[string]struct{} // roomID -> userID -> connID set
}

func NewMembershipTable() *MembershipTable {
	return &MembershipTable{rooms: make(map[string]map[string]map[string]struct{})}
}

// Join adds connID under (roomID, userID), creating room and user entries on
// first sight. Set semantics: re-adding an existing connection never
// double-counts.
func (t *MembershipTable) Join(roomID, userID, connID string) JoinResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	users, ok := t.rooms[roomID]
	if !ok {
		users = make(map[string]map[string]struct{})
		t.rooms[roomID] = users
	}

	conns, userKnown := users[userID]
	if !userKnown {
		conns = make(map[string]struct{})
		users[userID] = conns
	}

	status := JoinedNewUser
	if userKnown {
		if _, dup := conns[connID]; dup {
			status = AlreadyJoined
		} else {
			status = JoinedExtraConn
		}
	}
	conns[connID] = struct{}{}

	return JoinResult{Status: status, UniqueUsers: len(users)}
}

// Leave removes connID from (roomID, userID). Unknown triples are a no-op;
// reconnect races legitimately produce them. Empty user entries and empty
// rooms are deleted on the way out.
func (t *MembershipTable) Leave(roomID, userID, connID string) LeaveResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	users, ok := t.rooms[roomID]
	if !ok {
		return LeaveResult{}
	}
	conns, ok := users[userID]
	if !ok {
		return LeaveResult{UniqueUsers: len(users)}
	}

	delete(conns, connID)
	res := LeaveResult{}
	if len(conns) == 0 {
		delete(users, userID)
		res.UserRemoved = true
	}
	if len(users) == 0 {
		delete(t.rooms, roomID)
		res.RoomRemoved = true
	}
	res.UniqueUsers = len(users)
	return res
}

// UniqueUsers returns the distinct-user count for a room, 0 if the room does
// not exist.
func (t *MembershipTable) UniqueUsers(roomID string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rooms[roomID])
}

func (t *MembershipTable) HasRoom(roomID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rooms[roomID]
	return ok
}

// LiveRooms snapshots roomID -> unique user count for every occupied room.
// Used by the presence synchroniser.
func (t *MembershipTable) LiveRooms() map[string]int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]int, len(t.rooms))
	for id, users := range t.rooms {
		out[id] = len(users)
	}
	return out
}
