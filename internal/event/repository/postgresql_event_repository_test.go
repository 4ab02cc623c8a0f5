package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/ifood-integration/internal/event/domain"
)

func TestPostgreSQLEventRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLEventRepository(db)
	record := &domain.EventRecord{
		ID:            uuid.Must(uuid.NewV7()),
		RemoteEventID: "evt-1",
		RemoteOrderID: "order-1",
		Code:          "PLC",
		FullCode:      "PLACED",
		Result:        domain.ResultApplied,
		ReceivedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO events").
		WithArgs(
			record.ID, record.RemoteEventID, record.RemoteOrderID, record.Code,
			record.FullCode, record.Result, record.Error, record.ReceivedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), record)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLEventRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLEventRepository(db)
	receivedAt := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "remote_event_id", "remote_order_id", "code", "full_code", "result", "error", "received_at",
	}).
		AddRow(uuid.Must(uuid.NewV7()), "evt-2", "order-1", "CFM", "CONFIRMED", "applied", nil, receivedAt).
		AddRow(uuid.Must(uuid.NewV7()), "evt-1", "order-1", "PLC", "PLACED", "applied", nil, receivedAt.Add(-time.Minute))

	mock.ExpectQuery("SELECT (.+) FROM events ORDER BY received_at DESC").
		WithArgs(50, 0).
		WillReturnRows(rows)

	records, err := repo.List(context.Background(), 0, 50)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "evt-2", records[0].RemoteEventID)
	assert.Equal(t, domain.ResultApplied, records[0].Result)
}

func TestPostgreSQLEventRepository_CountSince(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLEventRepository(db)
	since := time.Now().UTC().Add(-24 * time.Hour)

	mock.ExpectQuery("SELECT COUNT(.+) FROM events WHERE received_at >=").
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountSince(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}
