package liveroom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinCountsDistinctUsers(t *testing.T) {
	m := NewMembershipTable()

	res := m.Join("r1", "u1", "c1")
	assert.Equal(t, JoinedNewUser, res.Status)
	assert.Equal(t, 1, res.UniqueUsers)

	// second tab of the same user must not inflate the count
	res = m.Join("r1", "u1", "c2")
	assert.Equal(t, JoinedExtraConn, res.Status)
	assert.Equal(t, 1, res.UniqueUsers)

	res = m.Join("r1", "u2", "c3")
	assert.Equal(t, JoinedNewUser, res.Status)
	assert.Equal(t, 2, res.UniqueUsers)
}

func TestJoinIdempotentOnDuplicateTriple(t *testing.T) {
	m := NewMembershipTable()
	m.Join("r1", "u1", "c1")

	res := m.Join("r1", "u1", "c1")
	assert.Equal(t, AlreadyJoined, res.Status)
	assert.Equal(t, 1, res.UniqueUsers)

	// leaving once must fully remove the user despite the double join
	out := m.Leave("r1", "u1", "c1")
	assert.True(t, out.UserRemoved)
	assert.True(t, out.RoomRemoved)
}

func TestLeaveMultiTabScenario(t *testing.T) {
	// user A joins r1 via c1 then c2; dropping c1 keeps them present,
	// dropping c2 empties the room
	m := NewMembershipTable()
	m.Join("r1", "a", "c1")
	m.Join("r1", "a", "c2")

	out := m.Leave("r1", "a", "c1")
	assert.False(t, out.UserRemoved)
	assert.False(t, out.RoomRemoved)
	assert.Equal(t, 1, out.UniqueUsers)

	out = m.Leave("r1", "a", "c2")
	assert.True(t, out.UserRemoved)
	assert.True(t, out.RoomRemoved)
	assert.Equal(t, 0, out.UniqueUsers)
	assert.False(t, m.HasRoom("r1"))
}

func TestLeaveUnknownIsNoop(t *testing.T) {
	m := NewMembershipTable()
	out := m.Leave("r1", "u1", "c1")
	assert.False(t, out.UserRemoved)
	assert.False(t, out.RoomRemoved)

	m.Join("r1", "u1", "c1")
	out = m.Leave("r1", "u2", "c9")
	assert.False(t, out.UserRemoved)
	assert.Equal(t, 1, out.UniqueUsers)
	require.True(t, m.HasRoom("r1"))
}

func TestEmptyRoomIsGarbageCollected(t *testing.T) {
	m := NewMembershipTable()
	m.Join("r1", "u1", "c1")
	m.Leave("r1", "u1", "c1")

	assert.False(t, m.HasRoom("r1"))
	assert.Equal(t, 0, m.UniqueUsers("r1"))
	assert.Empty(t, m.LiveRooms())
}

func TestLiveRoomsSnapshot(t *testing.T) {
	m := NewMembershipTable()
	for i := 0; i < 3; i++ {
		m.Join("r1", fmt.Sprintf("u%d", i), fmt.Sprintf("c%d", i))
	}
	m.Join("r2", "u0", "c9")

	assert.Equal(t, map[string]int{"r1": 3, "r2": 1}, m.LiveRooms())
}
