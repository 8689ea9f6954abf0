package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"hr-hub/internal/audit"
	"hr-hub/internal/config"
	"hr-hub/internal/employee"
	"hr-hub/internal/events"
	"hr-hub/internal/messaging/kafka/consumer"
	"hr-hub/internal/notification"
	"hr-hub/internal/onboarding"
	"hr-hub/internal/shared/connection"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunConsumer reacts to lifecycle events until SIGINT/SIGTERM.
// Employee events open onboarding checklists; leave and payroll events notify employees.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	if !cfg.KafkaEnabled() {
		return errors.New("KAFKA_BROKERS is required")
	}
	logger = logger.Named("app.consumer")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer in.close()

	sink := audit.NewAsyncSink(audit.NewRepository(in.db), audit.SinkConfig{
		BufferSize:    cfg.AuditBufferSize,
		BatchSize:     cfg.AuditBatchSize,
		FlushInterval: cfg.AuditFlushInterval,
	}, nil, logger)
	defer sink.Close()

	onboardingService := onboarding.NewService(onboarding.NewRepository(in.db), employee.NewRepository(in.db), sink, logger)
	notificationService := notification.NewService(notification.NewRepository(in.db), logger)

	subscriptions := []struct {
		name   string
		topic  string
		handle consumer.HandlerFunc
	}{
		{"employee", events.EmployeeLifecycleTopic, consumer.EmployeeLifecycle(onboardingService)},
		{"leave", events.LeaveLifecycleTopic, consumer.LeaveLifecycle(notificationService)},
		{"payroll", events.PayrollLifecycleTopic, consumer.PayrollLifecycle(notificationService)},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, sub := range subscriptions {
		reader := connection.NewKafkaReader(cfg.KafkaBrokers, cfg.KafkaConsumerGroup+"-"+sub.name, sub.topic)
		g.Go(func() error {
			defer reader.Close()
			consumer.Run(gctx, sub.name, reader, sub.handle, logger)
			return nil
		})
	}

	err = g.Wait()
	logger.Info("consumer shutting down")
	return err
}
