package app

import (
	"database/sql"

	"go-payroll/internal/employee"
	"go-payroll/internal/payslip"
	"go-payroll/internal/salary"

	"gorm.io/gorm"
)

// Statements for what the entity structs cannot express: the outbox
// table written through raw SQL, and the partial unique indexes that
// back the one-enabled-record and one-payslip-per-period rules.
var rawMigrations = []string{
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id UUID PRIMARY KEY,
		request_id TEXT,
		aggregate_type TEXT NOT NULL,
		aggregate_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		topic TEXT NOT NULL,
		payload JSONB NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		retry_count INT NOT NULL DEFAULT 0,
		error_message TEXT,
		next_retry_at TIMESTAMPTZ,
		processed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_status_retry
		ON outbox_events (status, next_retry_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_salary_employee_period_enabled
		ON salaries (employee_id, month, year)
		WHERE active_status = 'enabled'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_payslip_employee_period
		ON payslips (employee_id, month, year)`,
}

func runMigrations(gormDB *gorm.DB, sqlDB *sql.DB) error {
	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&salary.Salary{},
		&salary.SalaryComponent{},
		&payslip.Payslip{},
	); err != nil {
		return err
	}

	for _, stmt := range rawMigrations {
		if _, err := sqlDB.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
