package employeeerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeDuplicate,
		"Employee already exists with this email or employee ID",
		http.StatusConflict,
	)
)
