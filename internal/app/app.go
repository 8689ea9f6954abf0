package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"hr-hub/internal/audit"
	"hr-hub/internal/bootstrap"
	"hr-hub/internal/config"
	"hr-hub/internal/middleware"
	"hr-hub/internal/shared/apperror"
	"hr-hub/internal/shared/connection"
	"hr-hub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the assembled HTTP process. Closers run after the server stopped, in order.
type App struct {
	Router  *gin.Engine
	Closers []bootstrap.Closer
}

type infra struct {
	cfg    *config.Config
	db     *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
	logger *zap.Logger
}

func connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*infra, error) {
	db, err := connection.ConnectGORMWithRetry(ctx, cfg.DatabaseURL, cfg.DBMaxRetries, logger.Named("db"))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb, err = connection.ConnectRedisWithRetry(ctx, cfg.RedisAddr, cfg.RedisPassword, 3, logger.Named("redis"))
		if err != nil {
			logger.Warn("running without redis", zap.Error(err))
			rdb = nil
		}
	}

	return &infra{cfg: cfg, db: db, sqlDB: sqlDB, rdb: rdb, logger: logger}, nil
}

func (in *infra) close() error {
	var errs []error
	if in.rdb != nil {
		errs = append(errs, in.rdb.Close())
	}
	errs = append(errs, in.sqlDB.Close())
	return errors.Join(errs...)
}

func BuildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	in, err := connect(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	sink := audit.NewAsyncSink(audit.NewRepository(in.db), audit.SinkConfig{
		BufferSize:    cfg.AuditBufferSize,
		BatchSize:     cfg.AuditBatchSize,
		FlushInterval: cfg.AuditFlushInterval,
	}, reg, logger)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.AccessLog(logger),
		metrics.Middleware(),
	)
	router.GET("/healthz", health(in))
	router.GET("/metrics", metrics.Handler())

	if err := registerModules(router, in, sink); err != nil {
		_ = sink.Close()
		_ = in.close()
		return nil, err
	}

	return &App{
		Router: router,
		Closers: []bootstrap.Closer{
			func(context.Context) error { return sink.Close() },
			func(context.Context) error { return in.close() },
		},
	}, nil
}

func health(in *infra) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := map[string]string{"database": "ok"}
		if err := in.sqlDB.PingContext(c.Request.Context()); err != nil {
			in.logger.Warn("health check: database", zap.Error(err))
			response.Fail(c, apperror.Unavailable("Database unavailable"))
			return
		}
		if in.rdb != nil {
			status["redis"] = "ok"
			if err := in.rdb.Ping(c.Request.Context()).Err(); err != nil {
				status["redis"] = "degraded"
			}
		}
		response.Success(c, http.StatusOK, status)
	}
}
