package scheduler

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	jobs := r.Group("/scheduler")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.POST("/process-hike-updates",
			middleware.RateLimitByUser(0.1, 1),
			handler.ProcessHikeUpdates,
		)
	}
}
