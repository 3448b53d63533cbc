package payslip

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		payslips.POST("",
			middleware.RateLimitByUser(0.5, 2),
			handler.Generate,
		)
		payslips.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			handler.GetById,
		)
		payslips.GET("/:id/download",
			middleware.RateLimitByUser(1, 3),
			handler.Download,
		)
	}

	perEmployee := r.Group("/employees/:employeeId/payslips")
	perEmployee.Use(middleware.AuthMiddleware())
	{
		perEmployee.GET("",
			middleware.RateLimitByUser(2, 5),
			handler.GetAllByEmployee,
		)
	}
}
