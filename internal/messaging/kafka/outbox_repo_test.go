package kafka_test

import (
	"context"
	"encoding/json"
	"testing"

	"hr-hub/internal/events"
	"hr-hub/internal/messaging/kafka"
	"hr-hub/internal/shared/contextutil"
	"hr-hub/internal/shared/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	ev := events.EmployeeCreated{Meta: events.NewMeta(events.TypeEmployeeCreated, "kr"), EmployeeID: "e-1"}

	out, err := kafka.NewOutboxEvent(ctx, events.EmployeeLifecycleTopic, "employee", "e-1", ev)

	require.NoError(t, err)
	assert.Equal(t, "req-1", out.RequestID)
	assert.Equal(t, events.TypeEmployeeCreated, out.EventType)
	assert.Equal(t, kafka.OutboxStatusPending, out.Status)
	assert.Equal(t, "e-1", out.AggregateID)

	var decoded events.EmployeeCreated
	require.NoError(t, json.Unmarshal(out.Payload, &decoded))
	assert.Equal(t, ev.EventID, decoded.EventID)
	assert.Equal(t, "kr", decoded.CompanyID)
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{ID: "1", Topic: "t", Payload: []byte(`{}`), Status: kafka.OutboxStatusPending}
	assert.NoError(t, kafka.ValidateOutboxEvent(valid))

	noTopic := valid
	noTopic.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(noTopic))

	badStatus := valid
	badStatus.Status = "queued"
	assert.Error(t, kafka.ValidateOutboxEvent(badStatus))
}

func TestOutboxRepository_Create(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	repo := kafka.NewOutboxRepository(db)

	mock.ExpectExec(`INSERT INTO "outbox_events"`).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), kafka.OutboxEvent{
		ID: "6f1c1f0e-1d4c-4a39-9d1a-000000000001", Topic: "t", Payload: []byte(`{}`), Status: kafka.OutboxStatusPending,
	})

	assert.NoError(t, err)
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	repo := kafka.NewOutboxRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "outbox_events" WHERE status IN \(\$1,\$2\) AND .*next_retry_at <= NOW\(\).* ORDER BY created_at ASC LIMIT .* FOR UPDATE SKIP LOCKED`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "topic", "payload", "status"}).
			AddRow("ev-1", "hr.employee.lifecycle.v1", []byte(`{}`), kafka.OutboxStatusPending))

	out, err := repo.ListPending(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ev-1", out[0].ID)
}

func TestOutboxRepository_MarkFailedTruncatesReason(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	repo := kafka.NewOutboxRepository(db)

	long := make([]byte, 800)
	for i := range long {
		long[i] = 'x'
	}

	mock.ExpectExec(`UPDATE "outbox_events" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFailed(context.Background(), "ev-1", string(long)))
}
