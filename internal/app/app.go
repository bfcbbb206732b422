package app

import (
	"go-hr-ticketing/internal/config"
	"go-hr-ticketing/internal/middleware"
	"go-hr-ticketing/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the stores and mounts every module on router.
func BuildApp(router *gin.Engine, cfg config.Config) error {
	logger := zap.L().Named("app.api")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.Use(middleware.RequestID(), middleware.ContextLogger(logger))

	// 2. Register Modules & Routes
	return registerModules(router, cfg, sqlDB, gormDB, redisClient, logger)
}
