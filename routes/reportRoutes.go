package routes

import (
	"cityreport-be/controllers"

	"github.com/gin-gonic/gin"
)

// ReportRoutes sets up the report, upload and health routes. The guard
// and admin middleware apply only to the two mutating endpoints; the
// rate limiter (optional, nil when the redis backend is not active)
// applies to unauthenticated submission.
func ReportRoutes(r *gin.Engine, reports *controllers.ReportController, uploads *controllers.UploadController, health *controllers.HealthController, guard, admin, submitLimiter gin.HandlerFunc) {
	api := r.Group("/api")
	{
		api.GET("/reports", reports.ListReports)
		api.GET("/reports/:id", reports.GetReport)

		if submitLimiter != nil {
			api.POST("/reports", submitLimiter, reports.CreateReport)
		} else {
			api.POST("/reports", reports.CreateReport)
		}

		api.PATCH("/reports/:id/status", guard, admin, reports.UpdateStatus)
		api.DELETE("/reports/:id", guard, admin, reports.DeleteReport)

		api.POST("/uploads", uploads.UploadImage)
		api.GET("/health", health.Health)
	}
}
