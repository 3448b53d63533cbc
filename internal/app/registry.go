package app

import (
	"database/sql"

	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payslip"
	"go-payroll/internal/salary"
	"go-payroll/internal/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo)
	directory := employee.NewDirectory(employeeService)
	salaryService := salary.NewServiceWithOutbox(db, salaryRepo, directory, outboxRepo)
	payslipService := payslip.NewServiceWithOutbox(db, payslipRepo, salaryRepo, outboxRepo)
	reconciler := scheduler.NewReconciler(db, salaryRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	salaryHandler := salary.NewHandlerWithRedis(salaryService, rdb)
	payslipHandler := payslip.NewHandler(payslipService)
	schedulerHandler := scheduler.NewHandler(reconciler)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler)
		salary.RegisterRoutes(api, salaryHandler, rdb)
		payslip.RegisterRoutes(api, payslipHandler)
		scheduler.RegisterRoutes(api, schedulerHandler)
	}

	return nil
}
