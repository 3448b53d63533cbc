package scheduler

import (
	"net/http"
	"time"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	reconciler *Reconciler
	logger     *zap.Logger
}

func NewHandler(reconciler *Reconciler, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("scheduler-handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Handler{reconciler: reconciler, logger: l}
}

// ProcessHikeUpdates runs one reconciliation pass on demand. The
// optional as_of query parameter (YYYY-MM-DD) lets operators replay a
// missed day; it defaults to the current UTC day.
func (h *Handler) ProcessHikeUpdates(c *gin.Context) {
	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "as_of must be formatted as YYYY-MM-DD", nil)
			return
		}
		asOf = parsed
	}

	result, err := h.reconciler.Reconcile(c.Request.Context(), asOf)
	if err != nil {
		h.logger.Error("manual hike reconciliation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, result)
}
