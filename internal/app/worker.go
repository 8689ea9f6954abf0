package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"hr-hub/internal/config"
	"hr-hub/internal/messaging/kafka"
	"hr-hub/internal/messaging/kafka/producer"
	"hr-hub/internal/shared/connection"
	"hr-hub/internal/shared/database"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	if !cfg.KafkaEnabled() {
		return errors.New("KAFKA_BROKERS is required")
	}
	logger = logger.Named("app.worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer in.close()

	writer := connection.NewKafkaWriter(cfg.KafkaBrokers)
	defer writer.Close()

	worker := producer.NewWorker(
		kafka.NewOutboxRepository(in.db),
		database.NewTransactor(in.db),
		writer,
		cfg.OutboxPollInterval,
		logger,
	)
	worker.Run(ctx)

	logger.Info("worker shutting down")
	return nil
}
