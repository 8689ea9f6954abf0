package producer

import (
	"context"
	"time"

	"hr-hub/internal/messaging/kafka"
	"hr-hub/internal/shared/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultBatchSize    = 50
)

// Worker relays outbox rows to Kafka. A failed publish is marked for a later retry and does not
// stop the batch.
type Worker struct {
	repo         kafka.OutboxRepository
	transactor   database.Transactor
	writer       MessageWriter
	pollInterval time.Duration
	batchSize    int
	logger       *zap.Logger
}

func NewWorker(
	repo kafka.OutboxRepository,
	transactor database.Transactor,
	writer MessageWriter,
	pollInterval time.Duration,
	logger ...*zap.Logger,
) *Worker {
	l := zap.L().Named("kafka.producer.worker")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.worker")
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Worker{
		repo:         repo,
		transactor:   transactor,
		writer:       writer,
		pollInterval: pollInterval,
		batchSize:    defaultBatchSize,
		logger:       l,
	}
}

// Run polls until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started", zap.Duration("poll_interval", w.pollInterval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := w.ProcessPending(ctx); err != nil {
				w.logger.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// ProcessPending publishes one batch and returns how many events were sent.
func (w *Worker) ProcessPending(ctx context.Context) (int, error) {
	sent := 0
	err := w.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		repo := w.repo.WithTx(tx)

		pending, err := repo.ListPending(ctx, w.batchSize)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return nil
		}

		w.logger.Debug("processing pending outbox events", zap.Int("count", len(pending)))

		for _, event := range pending {
			if err := publishEvent(ctx, w.writer, event); err != nil {
				w.logger.Error("publish outbox event failed",
					zap.String("outbox_id", event.ID),
					zap.String("event_type", event.EventType),
					zap.String("topic", event.Topic),
					zap.Int("retry_count", event.RetryCount),
					zap.Error(err),
				)
				if err := repo.MarkFailed(ctx, event.ID, err.Error()); err != nil {
					return err
				}
				continue
			}

			if err := repo.MarkSent(ctx, event.ID); err != nil {
				return err
			}
			sent++

			w.logger.Info("outbox event sent",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
			)
		}
		return nil
	})
	return sent, err
}
