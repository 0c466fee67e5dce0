package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionCols = []string{
	"id", "host_id", "topic", "description", "start_time",
	"duration_mins", "status", "live_participants",
}

func newMock(t *testing.T) (ISessionService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSessionService(db), mock
}

func sessionRow(id, hostID, status string) *sqlmock.Rows {
	return sqlmock.NewRows(sessionCols).
		AddRow(id, hostID, "topic", "desc", time.Now().UTC(), 60, status, 0)
}

func TestCreateSession(t *testing.T) {
	svc, mock := newMock(t)

	start := time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(sqlmock.AnyArg(), "h1", "Goroutines 101", "intro", start, 60, StatusScheduled).
		WillReturnResult(sqlmock.NewResult(0, 1))

	dto, err := svc.CreateSession(context.Background(), "h1", "Goroutines 101", "intro", start, 60)
	require.NoError(t, err)
	assert.NotEmpty(t, dto.ID)
	assert.Equal(t, StatusScheduled, dto.Status)
	assert.Equal(t, "h1", dto.HostID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSessionNotFound(t *testing.T) {
	svc, mock := newMock(t)
	mock.ExpectQuery("FROM sessions WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestJoinSessionStudentEnrols(t *testing.T) {
	svc, mock := newMock(t)
	mock.ExpectQuery("FROM sessions WHERE id").
		WithArgs("s1").
		WillReturnRows(sessionRow("s1", "h1", StatusLive))
	mock.ExpectExec("INSERT INTO session_participants").
		WithArgs("s1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	dto, err := svc.JoinSession(context.Background(), "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, StatusLive, dto.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinSessionHostGoesLive(t *testing.T) {
	svc, mock := newMock(t)
	mock.ExpectQuery("FROM sessions WHERE id").
		WithArgs("s1").
		WillReturnRows(sessionRow("s1", "h1", StatusScheduled))
	mock.ExpectExec("UPDATE sessions SET status").
		WithArgs("s1", StatusLive).
		WillReturnResult(sqlmock.NewResult(0, 1))

	dto, err := svc.JoinSession(context.Background(), "s1", "h1")
	require.NoError(t, err)
	assert.Equal(t, StatusLive, dto.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinSessionEnded(t *testing.T) {
	svc, mock := newMock(t)
	mock.ExpectQuery("FROM sessions WHERE id").
		WithArgs("s1").
		WillReturnRows(sessionRow("s1", "h1", StatusEnded))

	_, err := svc.JoinSession(context.Background(), "s1", "u1")
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestEndSessionOnlyHost(t *testing.T) {
	svc, mock := newMock(t)
	mock.ExpectQuery("FROM sessions WHERE id").
		WithArgs("s1").
		WillReturnRows(sessionRow("s1", "h1", StatusLive))

	err := svc.EndSession(context.Background(), "s1", "intruder")
	assert.ErrorIs(t, err, ErrNotHost)
}

func TestEndSession(t *testing.T) {
	svc, mock := newMock(t)
	mock.ExpectQuery("FROM sessions WHERE id").
		WithArgs("s1").
		WillReturnRows(sessionRow("s1", "h1", StatusLive))
	mock.ExpectExec("UPDATE sessions SET status").
		WithArgs("s1", StatusEnded).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.EndSession(context.Background(), "s1", "h1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetLivePresence(t *testing.T) {
	svc, mock := newMock(t)
	mock.ExpectExec("UPDATE sessions SET live_participants").
		WithArgs("s1", 5, StatusLive).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.SetLivePresence(context.Background(), "s1", 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForHost(t *testing.T) {
	svc, mock := newMock(t)
	rows := sqlmock.NewRows(sessionCols).
		AddRow("s2", "h1", "later", "", time.Now().UTC(), 30, StatusScheduled, 0).
		AddRow("s1", "h1", "earlier", "", time.Now().UTC(), 30, StatusEnded, 0)
	mock.ExpectQuery("FROM sessions WHERE host_id").
		WithArgs("h1").
		WillReturnRows(rows)

	list, err := svc.ListForHost(context.Background(), "h1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s2", list[0].ID)
}
