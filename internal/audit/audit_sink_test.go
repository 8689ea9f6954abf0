package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hr-hub/internal/audit"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/contextutil"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	mu            sync.Mutex
	batches       [][]audit.Log
	InsertBatchFn func(ctx context.Context, logs []audit.Log) error
	ListFn        func(ctx context.Context, f audit.ListFilter) ([]audit.Log, int64, error)
	withTxCalls   int
}

func (f *fakeRepo) WithTx(tx *gorm.DB) audit.Repository {
	f.withTxCalls++
	return f
}

func (f *fakeRepo) InsertBatch(ctx context.Context, logs []audit.Log) error {
	if f.InsertBatchFn != nil {
		if err := f.InsertBatchFn(ctx, logs); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, logs)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter audit.ListFilter) ([]audit.Log, int64, error) {
	return f.ListFn(ctx, filter)
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func entry(action string) audit.Entry {
	return audit.Entry{
		ActorID:      "4b6f1c52-8f36-4a7b-9a52-0d7d0f1d7c11",
		Action:       action,
		ResourceType: "consent",
		ResourceID:   "c-1",
		CompanyID:    "5d3e0a4e-5d1c-4a77-8d2b-1a3f9c0b2e10",
	}
}

func TestAsyncSink_FlushesOnBatchSize(t *testing.T) {
	repo := &fakeRepo{}
	sink := audit.NewAsyncSink(repo, audit.SinkConfig{BufferSize: 10, BatchSize: 2, FlushInterval: time.Hour}, nil, zap.NewNop())
	defer sink.Close()

	sink.Record(context.Background(), entry("a"))
	sink.Record(context.Background(), entry("b"))

	assert.Eventually(t, func() bool { return repo.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestAsyncSink_FlushesOnInterval(t *testing.T) {
	repo := &fakeRepo{}
	sink := audit.NewAsyncSink(repo, audit.SinkConfig{BufferSize: 10, BatchSize: 100, FlushInterval: 10 * time.Millisecond}, nil, zap.NewNop())
	defer sink.Close()

	sink.Record(context.Background(), entry("a"))

	assert.Eventually(t, func() bool { return repo.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestAsyncSink_CloseDrains(t *testing.T) {
	repo := &fakeRepo{}
	sink := audit.NewAsyncSink(repo, audit.SinkConfig{BufferSize: 100, BatchSize: 1000, FlushInterval: time.Hour}, nil, zap.NewNop())

	for i := 0; i < 25; i++ {
		sink.Record(context.Background(), entry("a"))
	}
	require.NoError(t, sink.Close())

	assert.Equal(t, 25, repo.count())
	require.NoError(t, sink.Close())
}

func TestAsyncSink_DropsWhenFullWithoutBlocking(t *testing.T) {
	release := make(chan struct{})
	repo := &fakeRepo{
		InsertBatchFn: func(ctx context.Context, logs []audit.Log) error {
			<-release
			return nil
		},
	}
	reg := prometheus.NewRegistry()
	sink := audit.NewAsyncSink(repo, audit.SinkConfig{BufferSize: 1, BatchSize: 1, FlushInterval: time.Hour}, reg, zap.NewNop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			sink.Record(context.Background(), entry("a"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full buffer")
	}

	close(release)
	require.NoError(t, sink.Close())

	families, err := reg.Gather()
	require.NoError(t, err)
	dropped := 0.0
	for _, mf := range families {
		if mf.GetName() == "hrhub_audit_dropped_total" {
			dropped = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Greater(t, dropped, 0.0)
	assert.Equal(t, 50, repo.count()+int(dropped))
}

func TestAsyncSink_PersistenceFailureIsSwallowed(t *testing.T) {
	repo := &fakeRepo{
		InsertBatchFn: func(ctx context.Context, logs []audit.Log) error {
			return errors.New("audit_logs: relation does not exist")
		},
	}
	sink := audit.NewAsyncSink(repo, audit.SinkConfig{BufferSize: 10, BatchSize: 1, FlushInterval: time.Hour}, nil, zap.NewNop())

	assert.NotPanics(t, func() {
		sink.Record(context.Background(), entry("consent.revoke"))
	})
	require.NoError(t, sink.Close())
	assert.Zero(t, repo.count())
}

func TestAsyncSink_RecordAfterCloseIsDropped(t *testing.T) {
	repo := &fakeRepo{}
	sink := audit.NewAsyncSink(repo, audit.SinkConfig{}, nil, zap.NewNop())
	require.NoError(t, sink.Close())

	sink.Record(context.Background(), entry("late"))

	assert.Zero(t, repo.count())
}

func TestAsyncSink_RecordRacingCloseIsPersistedOrCounted(t *testing.T) {
	for round := 0; round < 20; round++ {
		repo := &fakeRepo{}
		reg := prometheus.NewRegistry()
		sink := audit.NewAsyncSink(repo, audit.SinkConfig{BufferSize: 1000, BatchSize: 10, FlushInterval: time.Millisecond}, reg, zap.NewNop())

		const writers, perWriter = 8, 25
		var wg sync.WaitGroup
		start := make(chan struct{})
		for w := 0; w < writers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				for i := 0; i < perWriter; i++ {
					sink.Record(context.Background(), entry("a"))
				}
			}()
		}
		close(start)
		require.NoError(t, sink.Close())
		wg.Wait()

		families, err := reg.Gather()
		require.NoError(t, err)
		dropped := 0.0
		for _, mf := range families {
			if mf.GetName() == "hrhub_audit_dropped_total" {
				dropped = mf.GetMetric()[0].GetCounter().GetValue()
			}
		}
		assert.Equal(t, writers*perWriter, repo.count()+int(dropped))
	}
}

func TestAsyncSink_RecordTxUsesCallerTransaction(t *testing.T) {
	repo := &fakeRepo{}
	sink := audit.NewAsyncSink(repo, audit.SinkConfig{}, nil, zap.NewNop())
	defer sink.Close()

	err := sink.RecordTx(context.Background(), &gorm.DB{}, entry("payroll.approve").WithChanges(
		map[string]string{"status": "REVIEW"},
		map[string]string{"status": "APPROVED"},
	))

	require.NoError(t, err)
	assert.Equal(t, 1, repo.withTxCalls)
	require.Equal(t, 1, repo.count())
	assert.JSONEq(t, `{"before":{"status":"REVIEW"},"after":{"status":"APPROVED"}}`, string(repo.batches[0][0].Changes))
}

func TestAsyncSink_RecordTxPropagatesError(t *testing.T) {
	repo := &fakeRepo{
		InsertBatchFn: func(ctx context.Context, logs []audit.Log) error {
			return errors.New("insert failed")
		},
	}
	sink := audit.NewAsyncSink(repo, audit.SinkConfig{}, nil, zap.NewNop())
	defer sink.Close()

	assert.Error(t, sink.RecordTx(context.Background(), nil, entry("payroll.approve")))
}

func TestNewEntry_FromContext(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "rid-9")
	ctx = contextutil.WithClient(ctx, "10.1.1.1", "ua/1")
	ctx = session.WithPrincipal(ctx, session.Principal{UserID: "u-7", Role: session.RoleHRAdmin, CompanyID: "kr"})

	e := audit.NewEntry(ctx, "employee.update", "employee", "e-1", "kr")

	assert.Equal(t, "u-7", e.ActorID)
	assert.Equal(t, "10.1.1.1", e.IP)
	assert.Equal(t, "ua/1", e.UserAgent)
	assert.Equal(t, "rid-9", e.RequestID)
	assert.False(t, e.OccurredAt.IsZero())
}

func TestMetricsRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := audit.NewAsyncSink(&fakeRepo{}, audit.SinkConfig{}, reg, zap.NewNop())
	defer sink.Close()

	n, err := promtest.GatherAndCount(reg, "hrhub_audit_dropped_total", "hrhub_audit_flush_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
