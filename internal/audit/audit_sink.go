package audit

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder is what business services depend on.
type Recorder interface {
	// Record never blocks and never fails; the entry may be dropped under pressure.
	Record(ctx context.Context, e Entry)
	// RecordTx writes the entry inside the caller's transaction.
	RecordTx(ctx context.Context, tx *gorm.DB, e Entry) error
}

type SinkConfig struct {
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
}

// AsyncSink buffers entries in a bounded channel drained by one worker that inserts in batches.
type AsyncSink struct {
	ch      chan Log
	repo    Repository
	cfg     SinkConfig
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.RWMutex
	closed  bool
	dropped prometheus.Counter
	failed  prometheus.Counter
	logger  *zap.Logger
}

func NewAsyncSink(repo Repository, cfg SinkConfig, reg prometheus.Registerer, logger ...*zap.Logger) *AsyncSink {
	l := zap.L().Named("audit.sink")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.sink")
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 4096
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 500 * time.Millisecond
	}

	s := &AsyncSink{
		ch:   make(chan Log, cfg.BufferSize),
		repo: repo,
		cfg:  cfg,
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hrhub",
			Name:      "audit_dropped_total",
			Help:      "Audit entries dropped because the buffer was full or the sink closed.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hrhub",
			Name:      "audit_flush_failures_total",
			Help:      "Audit batches that could not be persisted.",
		}),
		logger: l,
	}
	if reg != nil {
		reg.MustRegister(s.dropped, s.failed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.worker(ctx)

	return s
}

func (s *AsyncSink) Record(ctx context.Context, e Entry) {
	l, err := e.toLog()
	if err != nil {
		s.logger.Error("audit entry encode failed", zap.String("action", e.Action), zap.Error(err))
		s.dropped.Inc()
		return
	}

	// The read lock spans the send so Close cannot start draining between the check and the send.
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.drop(e, "sink closed")
		return
	}
	select {
	case s.ch <- l:
	default:
		s.drop(e, "buffer full")
	}
}

func (s *AsyncSink) RecordTx(ctx context.Context, tx *gorm.DB, e Entry) error {
	l, err := e.toLog()
	if err != nil {
		return err
	}
	return s.repo.WithTx(tx).InsertBatch(ctx, []Log{l})
}

// Close stops accepting entries, then flushes whatever is buffered.
func (s *AsyncSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	return nil
}

func (s *AsyncSink) drop(e Entry, reason string) {
	s.dropped.Inc()
	s.logger.Warn("audit entry dropped",
		zap.String("reason", reason),
		zap.String("action", e.Action),
		zap.String("resource_type", e.ResourceType),
		zap.String("resource_id", e.ResourceID),
	)
}

func (s *AsyncSink) worker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]Log, 0, s.cfg.BatchSize)
	for {
		select {
		case <-ctx.Done():
			batch = append(batch, s.drainAll()...)
			s.flush(batch)
			return

		case l := <-s.ch:
			batch = append(batch, l)
			if len(batch) >= s.cfg.BatchSize {
				s.flush(batch)
				batch = make([]Log, 0, s.cfg.BatchSize)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = make([]Log, 0, s.cfg.BatchSize)
			}
		}
	}
}

func (s *AsyncSink) flush(logs []Log) {
	if len(logs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.repo.InsertBatch(ctx, logs); err != nil {
		s.failed.Inc()
		s.logger.Error("audit flush failed", zap.Int("count", len(logs)), zap.Error(err))
		s.writeFallback(logs)
	}
}

// writeFallback keeps unpersisted entries in the structured log stream.
func (s *AsyncSink) writeFallback(logs []Log) {
	for _, l := range logs {
		actor := ""
		if l.ActorID != nil {
			actor = *l.ActorID
		}
		s.logger.Info("audit event",
			zap.String("timestamp", l.CreatedAt.UTC().Format(time.RFC3339)),
			zap.String("company_id", l.CompanyID),
			zap.String("actor_id", actor),
			zap.String("action", l.Action),
			zap.String("resource_type", l.ResourceType),
			zap.String("resource_id", l.ResourceID),
			zap.ByteString("changes", l.Changes),
		)
	}
}

func (s *AsyncSink) drainAll() []Log {
	var logs []Log
	for {
		select {
		case l := <-s.ch:
			logs = append(logs, l)
		default:
			return logs
		}
	}
}
