package employee

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("",
			middleware.RateLimitByUser(2, 5),
			handler.GetAll,
		)
		employees.GET("/:employeeId",
			middleware.RateLimitByUser(2, 5),
			handler.GetByEmployeeID,
		)
		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			handler.Create,
		)
		employees.PUT("/:employeeId",
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)
		employees.DELETE("/:employeeId",
			middleware.RateLimitByUser(0.1, 1),
			handler.Delete,
		)
	}
}
