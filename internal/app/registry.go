package app

import (
	"hr-hub/internal/analytics"
	"hr-hub/internal/attendance"
	"hr-hub/internal/audit"
	"hr-hub/internal/auth"
	"hr-hub/internal/company"
	"hr-hub/internal/compliance"
	"hr-hub/internal/department"
	"hr-hub/internal/employee"
	"hr-hub/internal/files"
	"hr-hub/internal/leave"
	"hr-hub/internal/messaging/kafka"
	"hr-hub/internal/middleware"
	"hr-hub/internal/notification"
	"hr-hub/internal/onboarding"
	"hr-hub/internal/payroll"
	"hr-hub/internal/performance"
	"hr-hub/internal/rbac"
	"hr-hub/internal/rbac/rbac_http"
	"hr-hub/internal/session"
	"hr-hub/internal/shared/cache"
	"hr-hub/internal/shared/connection"
	"hr-hub/internal/shared/counter"
	"hr-hub/internal/shared/database"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(router *gin.Engine, in *infra, recorder audit.Recorder) error {
	cfg, db, logger := in.cfg, in.db, in.logger

	// --- Infrastructure ---
	transactor := database.NewTransactor(db)
	cacheStore := cache.New(in.rdb, logger)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Access control ---
	rbacService, err := rbac.NewService(cfg.PermissionsFile, logger)
	if err != nil {
		return err
	}
	sessions := session.NewManager(session.NewTokens(cfg.SessionSecret), session.NewStore(db), cacheStore, cfg.SessionTTL, logger)
	gate := middleware.NewGate(sessions, rbacService, logger)

	var presigner files.Presigner
	if cfg.StorageEnabled() {
		client, err := connection.NewMinioClient(cfg.StorageEndpoint, cfg.StorageAccessKey, cfg.StorageSecretKey, cfg.StorageUseSSL)
		if err != nil {
			return err
		}
		presigner = client
	} else {
		logger.Warn("object storage not configured; file endpoints return 503")
	}

	// --- Repositories ---
	analyticsRepo := analytics.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	auditRepo := audit.NewRepository(db)
	authRepo := auth.NewRepository(db)
	companyRepo := company.NewRepository(db)
	complianceRepo := compliance.NewRepository(db)
	departmentRepo := department.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	onboardingRepo := onboarding.NewRepository(db)
	payrollRepo := payroll.NewRepository(db)
	performanceRepo := performance.NewRepository(db)

	// --- Services ---
	rules, err := compliance.DefaultRules()
	if err != nil {
		return err
	}
	companyService := company.NewService(companyRepo, recorder, logger)
	complianceService := compliance.NewService(rules, complianceRepo, employeeRepo, companyService, recorder, logger)
	authService := auth.NewService(authRepo, sessions, rbacService, recorder, logger)
	employeeService := employee.NewService(transactor, employeeRepo, counter.NewRepository(db), outboxRepo, recorder, logger)
	leaveService := leave.NewService(transactor, leaveRepo, employeeRepo, companyService, complianceService, outboxRepo, recorder, logger)
	payrollService := payroll.NewService(transactor, payrollRepo, employeeRepo, complianceService, outboxRepo, recorder, logger)
	attendanceService := attendance.NewService(attendanceRepo, employeeRepo, complianceService, recorder, logger)
	departmentService := department.NewService(departmentRepo, recorder, logger)
	performanceService := performance.NewService(performanceRepo, recorder, logger)
	onboardingService := onboarding.NewService(onboardingRepo, employeeRepo, recorder, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	analyticsService := analytics.NewService(analyticsRepo, employeeRepo, cacheStore, logger)
	filesService := files.NewService(presigner, cfg.StorageBucket, cfg.PresignTTL, recorder, logger)
	auditService := audit.NewService(auditRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.SessionCookieSecure, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, authHandler, gate)

	protected := api.Group("", gate.Authenticate(), middleware.RateLimitByUser(20, 40))
	{
		company.RegisterRoutes(protected, company.NewHandler(companyService, logger), gate)
		employee.RegisterRoutes(protected, employee.NewHandler(employeeService, logger), gate)
		department.RegisterRoutes(protected, department.NewHandler(departmentService, logger), gate)
		leave.RegisterRoutes(protected, leaveHandler, gate)
		payroll.RegisterRoutes(protected, payrollHandler, gate, in.rdb)
		performance.RegisterRoutes(protected, performance.NewHandler(performanceService, logger), gate)
		onboarding.RegisterRoutes(protected, onboarding.NewHandler(onboardingService, logger), gate)
		compliance.RegisterRoutes(protected, compliance.NewHandler(complianceService, logger), gate)
		attendance.RegisterRoutes(protected, attendance.NewHandler(attendanceService, logger), gate)
		analytics.RegisterRoutes(protected, analytics.NewHandler(analyticsService, logger), gate)
		files.RegisterRoutes(protected, files.NewHandler(filesService, logger), gate)
		notification.RegisterRoutes(protected, notification.NewHandler(notificationService, logger), gate)
		audit.RegisterRoutes(protected, audit.NewHandler(auditService, logger), gate)
		rbac_http.RegisterRoutes(protected, rbac.NewHandler(rbacService, logger), gate)
	}

	cron := api.Group("/cron", middleware.CronAuth(cfg.CronSecret))
	{
		leave.RegisterCronRoutes(cron, leaveHandler)
		auth.RegisterCronRoutes(cron, authHandler)
	}

	logger.Info("modules registered", zap.Int("routes", len(router.Routes())))
	return nil
}
