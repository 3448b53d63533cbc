package salary

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
) {
	salaries := r.Group("/salaries")
	salaries.Use(middleware.AuthMiddleware())
	{
		salaries.GET("",
			middleware.RateLimitByUser(2, 5),
			handler.GetAll,
		)
		salaries.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			handler.GetById,
		)
		salaries.POST("",
			middleware.RateLimitByUser(0.5, 2),
			handler.Create,
		)
		salaries.POST("/:id/apply-hike",
			middleware.RateLimitByUser(0.2, 1),
			middleware.Idempotency(rdb),
			handler.ApplyHike,
		)
	}

	// Employee-scoped lookups live under the employees prefix so the
	// salaries group keeps a single :id wildcard.
	perEmployee := r.Group("/employees/:employeeId/salary")
	perEmployee.Use(middleware.AuthMiddleware())
	{
		perEmployee.GET("/active",
			middleware.RateLimitByUser(2, 5),
			handler.GetActive,
		)
		perEmployee.GET("/history",
			middleware.RateLimitByUser(2, 5),
			handler.GetHistory,
		)
		perEmployee.GET("/pending-hike",
			middleware.RateLimitByUser(2, 5),
			handler.HasPendingHike,
		)
	}
}
