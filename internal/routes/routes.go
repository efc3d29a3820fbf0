package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter registers every route group on a fresh engine. Middleware that
// applies to the whole server (recovery, request logging, CORS) is attached
// in cmd/server.
func SetupRouter() *gin.Engine {
	r := gin.New()

	AuthRoutes(r)
	VehicleRoutes(r)
	DriverRoutes(r)
	BookingRoutes(r)
	AdminRoutes(r)

	return r
}
