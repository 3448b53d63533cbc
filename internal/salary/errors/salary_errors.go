package salaryerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrActiveSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Active salary record not found",
		http.StatusNotFound,
	)

	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary record not found",
		http.StatusNotFound,
	)

	ErrDuplicateEnabledPeriod = apperror.New(
		apperror.CodeDuplicate,
		"An enabled salary record already exists for this employee and period",
		http.StatusConflict,
	)

	ErrHikePercentOutOfRange = apperror.New(
		apperror.CodeValidation,
		"Hike percentage must be greater than 0 and at most 100",
		http.StatusBadRequest,
	)

	ErrInvalidStartDate = apperror.New(
		apperror.CodeValidation,
		"Invalid hike start date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
