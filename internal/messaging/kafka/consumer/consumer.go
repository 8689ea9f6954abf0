package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hr-hub/internal/events"
	"hr-hub/internal/tenant"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// HandlerFunc processes one decoded event. ctx is already scoped to the event's company.
type HandlerFunc func(ctx context.Context, meta events.Meta, value []byte) error

// ErrSkip marks a message that can never succeed; it is committed without retrying.
var ErrSkip = errors.New("consumer: skip message")

const (
	maxAttempts = 3
	baseBackoff = 500 * time.Millisecond
)

// Run fetches messages until ctx is cancelled. Undecodable messages are committed and skipped,
// handler failures are retried with backoff before the message is given up on.
func Run(ctx context.Context, name string, reader MessageReader, handle HandlerFunc, logger *zap.Logger) {
	log := logger.Named("kafka.consumer." + name)
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if err := dispatch(ctx, msg, handle, log); err != nil && ctx.Err() != nil {
			log.Info("consumer stopped")
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func dispatch(ctx context.Context, msg kafkago.Message, handle HandlerFunc, log *zap.Logger) error {
	var meta events.Meta
	if err := json.Unmarshal(msg.Value, &meta); err != nil || meta.EventID == "" || meta.CompanyID == "" {
		log.Error("decode event envelope failed",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return nil
	}

	fields := []zap.Field{
		zap.String("event_id", meta.EventID),
		zap.String("event_type", meta.EventType),
		zap.String("company_id", meta.CompanyID),
	}
	scoped := tenant.WithScope(ctx, tenant.ForCompany(meta.CompanyID))

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = handle(scoped, meta, msg.Value)
		if err == nil {
			log.Info("event handled", fields...)
			return nil
		}
		if errors.Is(err, ErrSkip) {
			log.Warn("event skipped", append(fields, zap.Error(err))...)
			return nil
		}

		log.Warn("handle event failed", append(fields, zap.Int("attempt", attempt), zap.Error(err))...)
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(baseBackoff * time.Duration(attempt)):
		}
	}

	log.Error("giving up on event", append(fields, zap.Error(err))...)
	return nil
}
