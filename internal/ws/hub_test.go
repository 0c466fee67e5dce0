package ws

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contains reports whether the hub currently tracks c in roomID.
func (h *Hub) contains(roomID string, c *clientConn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[roomID]
	if !ok {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, in := r.conns[c]
	return in
}

func TestHubJoinLeave(t *testing.T) {
	h := NewHub()
	c := &clientConn{id: "c1"}

	h.Join("r1", c)
	assert.Equal(t, 1, h.RoomCount())
	assert.True(t, h.contains("r1", c))

	h.Leave("r1", c)
	assert.Equal(t, 0, h.RoomCount())

	// stray leave is a no-op
	h.Leave("r1", c)
	assert.Equal(t, 0, h.RoomCount())
}

func TestJoinDuringLastLeaveNeverOrphansJoiner(t *testing.T) {
	// The last member's disconnect racing a new join must leave the joiner
	// reachable: either in the surviving room object or in a fresh one, but
	// always in the hub's map.
	h := NewHub()

	for i := 0; i < 5000; i++ {
		leaver := &clientConn{id: fmt.Sprintf("old-%d", i)}
		joiner := &clientConn{id: fmt.Sprintf("new-%d", i)}
		h.Join("r", leaver)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			h.Leave("r", leaver)
		}()
		go func() {
			defer wg.Done()
			h.Join("r", joiner)
		}()
		wg.Wait()

		require.True(t, h.contains("r", joiner),
			"iteration %d: joiner lost from hub, broadcasts would skip it", i)
		h.Leave("r", joiner)
	}
}
