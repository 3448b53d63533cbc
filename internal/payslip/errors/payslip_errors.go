package paysliperrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var ErrPayslipNotFound = apperror.New(
	apperror.CodeNotFound,
	"Payslip not found",
	http.StatusNotFound,
)

var ErrSalaryNotActive = apperror.New(
	apperror.CodeInvalidState,
	"Payslips can only be generated from the enabled salary record",
	http.StatusConflict,
)

var ErrPayslipAlreadyExists = apperror.New(
	apperror.CodeDuplicate,
	"A payslip already exists for this employee and pay period",
	http.StatusConflict,
)
