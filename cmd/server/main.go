package main

import (
	"log"
	"net/http"

	"fleet_booking/internal/config"
	"fleet_booking/internal/logger"
	"fleet_booking/internal/middleware"
	"fleet_booking/internal/routes"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database and run migrations
	config.InitDB()

	// Setup Gin router
	r := routes.SetupRouter()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Request logging middleware
	r.Use(ginlog.SetLogger())

	// CORS from CORS_ALLOWED_ORIGINS
	r.Use(middleware.CORS())

	addr := config.GetEnv("SERVER_ADDR", "0.0.0.0:8080")
	log.Printf("Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
