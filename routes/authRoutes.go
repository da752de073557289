package routes

import (
	"cityreport-be/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, auth *controllers.AuthController) {
	group := r.Group("/api/auth")
	{
		group.POST("/login", auth.Login)
		group.GET("/verify", auth.Verify)
		group.POST("/logout", auth.Logout)
	}
}
