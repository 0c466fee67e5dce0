package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type SessionDTO struct {
	ID               string    `json:"id"`
	HostID           string    `json:"host_id"`
	Topic            string    `json:"topic"`
	Description      string    `json:"description"`
	StartTime        time.Time `json:"start_time" example:"2026-09-01T16:00:00Z"`
	DurationMins     int       `json:"duration_mins"`
	Status           string    `json:"status" example:"LIVE"`
	LiveParticipants int       `json:"live_participants"`
}

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusEnded     = "ENDED"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotHost         = errors.New("only the host may do this")
	ErrSessionEnded    = errors.New("session already ended")
)

type ISessionService interface {
	CreateSession(ctx context.Context, hostID, topic, description string, startTime time.Time, durationMins int) (*SessionDTO, error)
	GetSession(ctx context.Context, id string) (*SessionDTO, error)
	ListForHost(ctx context.Context, hostID string) ([]SessionDTO, error)
	ListForParticipant(ctx context.Context, userID string) ([]SessionDTO, error)
	JoinSession(ctx context.Context, id, userID string) (*SessionDTO, error)
	EndSession(ctx context.Context, id, hostID string) error
	SetLivePresence(ctx context.Context, id string, count int) error
}

type sessionService struct {
	db *sql.DB
}

func NewSessionService(db *sql.DB) ISessionService {
	return &sessionService{db: db}
}

const selectCols = `id, host_id, topic, coalesce(description,''), start_time,
                    duration_mins, status, coalesce(live_participants,0)`

func (svc *sessionService) CreateSession(ctx context.Context, hostID, topic, description string, startTime time.Time, durationMins int) (*SessionDTO, error) {
	dto := &SessionDTO{
		ID:           uuid.NewString(),
		HostID:       hostID,
		Topic:        topic,
		Description:  description,
		StartTime:    startTime.UTC(),
		DurationMins: durationMins,
		Status:       StatusScheduled,
	}
	const q = `INSERT INTO sessions (id, host_id, topic, description, start_time, duration_mins, status)
	                VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := svc.db.ExecContext(ctx, q,
		dto.ID, dto.HostID, dto.Topic, dto.Description, dto.StartTime, dto.DurationMins, dto.Status)
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (svc *sessionService) GetSession(ctx context.Context, id string) (*SessionDTO, error) {
	row := svc.db.QueryRowContext(ctx,
		`SELECT `+selectCols+` FROM sessions WHERE id = $1`, id)
	return scanSession(row)
}

func (svc *sessionService) ListForHost(ctx context.Context, hostID string) ([]SessionDTO, error) {
	rows, err := svc.db.QueryContext(ctx,
		`SELECT `+selectCols+` FROM sessions WHERE host_id = $1 ORDER BY start_time DESC`, hostID)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

func (svc *sessionService) ListForParticipant(ctx context.Context, userID string) ([]SessionDTO, error) {
	const q = `SELECT ` + selectCols + `
	             FROM sessions
	            WHERE id IN (SELECT session_id FROM session_participants WHERE user_id = $1)
	            ORDER BY start_time DESC`
	rows, err := svc.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// JoinSession enrols the caller. The host's first join flips the session
// live; students are recorded in the participant table.
func (svc *sessionService) JoinSession(ctx context.Context, id, userID string) (*SessionDTO, error) {
	dto, err := svc.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if dto.Status == StatusEnded {
		return nil, ErrSessionEnded
	}

	if userID == dto.HostID {
		if dto.Status == StatusScheduled {
			if _, err := svc.db.ExecContext(ctx,
				`UPDATE sessions SET status = $2 WHERE id = $1`, id, StatusLive); err != nil {
				return nil, err
			}
			dto.Status = StatusLive
		}
		return dto, nil
	}

	const q = `INSERT INTO session_participants (session_id, user_id)
	                VALUES ($1, $2)
	           ON CONFLICT DO NOTHING`
	if _, err := svc.db.ExecContext(ctx, q, id, userID); err != nil {
		return nil, err
	}
	return dto, nil
}

func (svc *sessionService) EndSession(ctx context.Context, id, hostID string) error {
	dto, err := svc.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if dto.HostID != hostID {
		return ErrNotHost
	}
	if dto.Status == StatusEnded {
		return ErrSessionEnded
	}
	_, err = svc.db.ExecContext(ctx,
		`UPDATE sessions SET status = $2, live_participants = 0 WHERE id = $1`, id, StatusEnded)
	return err
}

// SetLivePresence is called by the presence synchroniser; it never fails the
// room layer, errors are the caller's to log.
func (svc *sessionService) SetLivePresence(ctx context.Context, id string, count int) error {
	_, err := svc.db.ExecContext(ctx,
		`UPDATE sessions SET live_participants = $2 WHERE id = $1 AND status = $3`,
		id, count, StatusLive)
	return err
}

func scanSession(row *sql.Row) (*SessionDTO, error) {
	dto := &SessionDTO{}
	err := row.Scan(&dto.ID, &dto.HostID, &dto.Topic, &dto.Description,
		&dto.StartTime, &dto.DurationMins, &dto.Status, &dto.LiveParticipants)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func collectSessions(rows *sql.Rows) ([]SessionDTO, error) {
	defer rows.Close()
	list := make([]SessionDTO, 0, 10)
	for rows.Next() {
		var s SessionDTO
		if err := rows.Scan(&s.ID, &s.HostID, &s.Topic, &s.Description,
			&s.StartTime, &s.DurationMins, &s.Status, &s.LiveParticipants); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
