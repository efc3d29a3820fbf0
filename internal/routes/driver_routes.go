package routes

import (
	"fleet_booking/internal/controllers"
	"fleet_booking/internal/middleware"
	"fleet_booking/internal/permissions"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(r *gin.Engine) {
	drivers := r.Group("/api/drivers")
	drivers.Use(middleware.RequireAuth())
	{
		drivers.GET("", middleware.RequirePermission(permissions.DriverRead), controllers.ListDrivers)
		drivers.POST("", middleware.RequirePermission(permissions.DriverManage), controllers.CreateDriver)
		drivers.PUT("/:id", middleware.RequirePermission(permissions.DriverManage), controllers.UpdateDriver)
		drivers.DELETE("/:id", middleware.RequirePermission(permissions.DriverManage), controllers.DeleteDriver)
	}
}
