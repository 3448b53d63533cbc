package salary

import (
	"errors"
	"strings"

	salaryerrors "go-payroll/internal/salary/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryerrors.ErrSalaryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_salary_employee_period_enabled" {
			return salaryerrors.ErrDuplicateEnabledPeriod
		}
		// Connection-class failures are retryable by the caller.
		if pgErr.Code == "40001" || pgErr.Code == "40P01" || strings.HasPrefix(pgErr.Code, "08") {
			return apperror.TransientStore(err)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_salary_employee_period_enabled") {
		return salaryerrors.ErrDuplicateEnabledPeriod
	}

	return err
}
