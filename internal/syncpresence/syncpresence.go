package syncpresence

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Abhinavsharma005/EduStream-2/internal/services/liveroom"
	"github.com/Abhinavsharma005/EduStream-2/internal/services/session"
)

const syncInterval = 10 * time.Second

// Run mirrors every live room's unique-user count into the sessions table
// every 10 s, so dashboards show attendance without touching the room layer.
// Best-effort: the in-memory count is authoritative, the DB copy is cosmetic.
func Run(ctx context.Context, membership *liveroom.MembershipTable, svc session.ISessionService) {
	tk := time.NewTicker(syncInterval)
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				syncOnce(ctx, membership, svc)
			}
		}
	}()
}

func syncOnce(ctx context.Context, membership *liveroom.MembershipTable, svc session.ISessionService) {
	for roomID, count := range membership.LiveRooms() {
		if err := svc.SetLivePresence(ctx, roomID, count); err != nil {
			zap.L().Debug("syncpresence.update",
				zap.String("room_id", roomID), zap.Error(err))
		}
	}
}
