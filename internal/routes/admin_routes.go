package routes

import (
	"fleet_booking/internal/controllers"
	"fleet_booking/internal/middleware"
	"fleet_booking/internal/permissions"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAuth())
	{
		admin.GET("/users", middleware.RequirePermission(permissions.UserRead), controllers.ListUsers)
		admin.POST("/users", middleware.RequirePermission(permissions.UserManage), controllers.CreateUser)
	}
}
