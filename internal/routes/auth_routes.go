package routes

import (
	"fleet_booking/internal/controllers"
	"fleet_booking/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.GET("/verify-token", middleware.RequireAuth(), controllers.VerifyToken)
	}
}
