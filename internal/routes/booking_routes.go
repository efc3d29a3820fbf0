package routes

import (
	"fleet_booking/internal/controllers"
	"fleet_booking/internal/middleware"
	"fleet_booking/internal/permissions"

	"github.com/gin-gonic/gin"
)

func BookingRoutes(r *gin.Engine) {
	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.RequireAuth())
	{
		bookings.GET("", middleware.RequirePermission(permissions.BookingRead), controllers.ListBookings)
		bookings.POST("", middleware.RequirePermission(permissions.BookingCreate), controllers.CreateBooking)
		bookings.GET("/:id", middleware.RequirePermission(permissions.BookingRead), controllers.GetBooking)
		bookings.GET("/:id/trip-sheet", middleware.RequirePermission(permissions.BookingRead), controllers.TripSheet)
		bookings.POST("/:id/cancel", middleware.RequirePermission(permissions.BookingCancel), controllers.CancelBooking)

		// Per-level resolve permission is checked in the handler, the level
		// being a path parameter.
		bookings.PATCH("/:id/approvals/:level", controllers.ResolveApproval)
	}
}
