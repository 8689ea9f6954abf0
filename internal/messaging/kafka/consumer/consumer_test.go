package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"hr-hub/internal/events"
	"hr-hub/internal/messaging/kafka/consumer"
	"hr-hub/internal/notification"
	"hr-hub/internal/tenant"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []kafkago.Message
	drained   chan struct{}
}

func newFakeReader(msgs ...kafkago.Message) *fakeReader {
	return &fakeReader{queue: msgs, drained: make(chan struct{})}
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	f.mu.Lock()
	if len(f.queue) > 0 {
		m := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()
		return m, nil
	}
	f.mu.Unlock()
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, msgs...)
	if len(f.queue) == 0 {
		select {
		case <-f.drained:
		default:
			close(f.drained)
		}
	}
	return nil
}

func runUntilDrained(t *testing.T, reader *fakeReader, handle consumer.HandlerFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		consumer.Run(ctx, "test", reader, handle, zap.NewNop())
		close(done)
	}()

	select {
	case <-reader.drained:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not drain the queue")
	}
	cancel()
	<-done
}

func message(t *testing.T, v any) kafkago.Message {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return kafkago.Message{Value: raw}
}

type fakeStarter struct {
	mu    sync.Mutex
	calls []string
	err   error
	scope tenant.Scope
}

func (f *fakeStarter) StartForNewHire(ctx context.Context, companyID, employeeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, companyID+"/"+employeeID)
	f.scope, _ = tenant.FromContext(ctx)
	return f.err
}

type fakeNotifier struct {
	mu         sync.Mutex
	deliveries []notification.Delivery
}

func (f *fakeNotifier) Deliver(ctx context.Context, d notification.Delivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliveries = append(f.deliveries, d)
	return nil
}

func TestRun_EmployeeCreatedStartsOnboarding(t *testing.T) {
	starter := &fakeStarter{}
	ev := events.EmployeeCreated{Meta: events.NewMeta(events.TypeEmployeeCreated, "kr"), EmployeeID: "e-1"}
	reader := newFakeReader(message(t, ev))

	runUntilDrained(t, reader, consumer.EmployeeLifecycle(starter))

	assert.Equal(t, []string{"kr/e-1"}, starter.calls)
	assert.Equal(t, "kr", starter.scope.CompanyID())
	assert.Len(t, reader.committed, 1)
}

func TestRun_PoisonMessageIsCommitted(t *testing.T) {
	starter := &fakeStarter{}
	reader := newFakeReader(kafkago.Message{Value: []byte("not json")})

	runUntilDrained(t, reader, consumer.EmployeeLifecycle(starter))

	assert.Empty(t, starter.calls)
	assert.Len(t, reader.committed, 1)
}

func TestRun_SkipErrorIsNotRetried(t *testing.T) {
	starter := &fakeStarter{err: consumer.ErrSkip}
	ev := events.EmployeeCreated{Meta: events.NewMeta(events.TypeEmployeeCreated, "kr"), EmployeeID: "e-1"}
	reader := newFakeReader(message(t, ev))

	runUntilDrained(t, reader, consumer.EmployeeLifecycle(starter))

	assert.Len(t, starter.calls, 1)
}

func TestRun_TransientErrorIsRetried(t *testing.T) {
	starter := &fakeStarter{err: errors.New("db down")}
	ev := events.EmployeeCreated{Meta: events.NewMeta(events.TypeEmployeeCreated, "kr"), EmployeeID: "e-1"}
	reader := newFakeReader(message(t, ev))

	runUntilDrained(t, reader, consumer.EmployeeLifecycle(starter))

	assert.Len(t, starter.calls, 3)
	assert.Len(t, reader.committed, 1)
}

func TestLeaveLifecycle(t *testing.T) {
	notifier := &fakeNotifier{}
	handle := consumer.LeaveLifecycle(notifier)
	ev := events.LeaveDecided{
		Meta:       events.NewMeta(events.TypeLeaveRejected, "kr"),
		EmployeeID: "e-1",
		LeaveType:  "ANNUAL",
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-04",
		Reason:     "coverage",
	}
	raw, _ := json.Marshal(ev)

	err := handle(context.Background(), ev.Meta, raw)

	require.NoError(t, err)
	require.Len(t, notifier.deliveries, 1)
	d := notifier.deliveries[0]
	assert.Equal(t, ev.EventID, d.EventID)
	assert.Equal(t, "e-1", d.EmployeeID)
	assert.Equal(t, "Leave request rejected", d.Title)
	assert.Contains(t, d.Body, "Reason: coverage")
}

func TestPayrollLifecycle_NotifiesEveryEmployee(t *testing.T) {
	notifier := &fakeNotifier{}
	handle := consumer.PayrollLifecycle(notifier)
	ev := events.PayrollPaid{
		Meta:        events.NewMeta(events.TypePayrollPaid, "us"),
		RunID:       "r-1",
		Period:      "2026-09",
		EmployeeIDs: []string{"e-1", "e-2"},
	}
	raw, _ := json.Marshal(ev)

	err := handle(context.Background(), ev.Meta, raw)

	require.NoError(t, err)
	require.Len(t, notifier.deliveries, 2)
	assert.Equal(t, "e-2", notifier.deliveries[1].EmployeeID)
	assert.Equal(t, ev.EventID, notifier.deliveries[1].EventID)
}
