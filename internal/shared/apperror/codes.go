package apperror

const (
	// Client errors (4xx)
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeDuplicate    = "DUPLICATE"
	CodeInvalidState = "INVALID_STATE"

	// Server errors (5xx)
	CodeInternalError  = "INTERNAL_ERROR"
	CodeTransientStore = "TRANSIENT_STORE_ERROR"
)
