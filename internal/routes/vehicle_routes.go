package routes

import (
	"fleet_booking/internal/controllers"
	"fleet_booking/internal/middleware"
	"fleet_booking/internal/permissions"

	"github.com/gin-gonic/gin"
)

func VehicleRoutes(r *gin.Engine) {
	vehicles := r.Group("/api/vehicles")
	vehicles.Use(middleware.RequireAuth())
	{
		vehicles.GET("", middleware.RequirePermission(permissions.VehicleRead), controllers.ListVehicles)
		vehicles.POST("", middleware.RequirePermission(permissions.VehicleManage), controllers.CreateVehicle)
		vehicles.PUT("/:id", middleware.RequirePermission(permissions.VehicleManage), controllers.UpdateVehicle)
		vehicles.PUT("/:id/location", middleware.RequirePermission(permissions.VehicleManage), controllers.SetVehicleLocation)
		vehicles.DELETE("/:id", middleware.RequirePermission(permissions.VehicleManage), controllers.DeleteVehicle)
	}
}
