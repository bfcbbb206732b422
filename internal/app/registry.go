package app

import (
	"database/sql"

	"go-hr-ticketing/internal/balance"
	"go-hr-ticketing/internal/config"
	"go-hr-ticketing/internal/department"
	"go-hr-ticketing/internal/employee"
	"go-hr-ticketing/internal/leave"
	"go-hr-ticketing/internal/messaging/kafka"
	"go-hr-ticketing/internal/middleware"
	"go-hr-ticketing/internal/notification"
	"go-hr-ticketing/internal/rbac"
	"go-hr-ticketing/internal/rbac/infra"
	"go-hr-ticketing/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	assignmentRepo := leave.NewAssignmentRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	departmentService := department.NewService(db, departmentRepo, rdb, logger)
	ledger := balance.NewLedger(balanceRepo, rdb, cfg.BalanceCacheTTL, logger)
	employeeService := employee.NewService(db, employeeRepo, rdb, ledger, logger)
	emitter := notification.NewEmitter(db, notificationRepo, outboxRepo, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	leaveService := leave.NewService(
		db,
		leaveRepo,
		assignmentRepo,
		ledger,
		counterRepo,
		emitter,
		leave.Options{PlannedNoticeDays: cfg.PlannedNoticeDays},
		logger,
	)
	leaveQuery := leave.NewQueryService(leaveRepo, assignmentRepo, ledger, employeeService, nil, logger)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, leaveQuery, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Middleware ---
	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	idempotency := middleware.Idempotency(rdb, logger)
	decisionLimit := middleware.RateLimitByUser(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		department.RegisterRoutes(api, departmentHandler, rbacService, auth)
		employee.RegisterRoutes(api, employeeHandler, rbacService, auth, logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, auth, idempotency, decisionLimit, logger)
		notification.RegisterRoutes(api, notificationHandler, rbacService, auth)
		rbac.RegisterRoutes(api, rbacHandler, auth)
	}

	return nil
}
