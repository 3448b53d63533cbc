package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-payroll/internal/salary"
	"go-payroll/internal/scheduler"
	"go-payroll/internal/shared/connection"

	"go.uber.org/zap"
)

// RunScheduler drives the daily hike activation pass. A redis lease
// keeps concurrent replicas from reconciling at the same time.
func RunScheduler() error {
	logger := zap.L().Named("app.scheduler")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var lease *scheduler.Lease
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient, err := connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		lease = scheduler.NewLease(redisClient, "payroll:scheduler:hike-activation", 10*time.Minute)
	}

	interval := 24 * time.Hour
	if raw := os.Getenv("SCHEDULER_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		interval = parsed
	}

	salaryRepo := salary.NewRepository(gormDB)
	reconciler := scheduler.NewReconciler(sqlDB, salaryRepo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go scheduler.Run(ctx, reconciler, lease, interval, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("scheduler shutting down")
	cancel()

	return nil
}
