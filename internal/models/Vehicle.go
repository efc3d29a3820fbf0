// internal/models/vehicle.go
package models

import (
	"gorm.io/gorm"
)

// Vehicle status values. Only available vehicles can be booked.
const (
	VehicleAvailable   = "available"
	VehicleMaintenance = "maintenance"
	VehicleRetired     = "retired"
)

type Vehicle struct {
	gorm.Model
	PlateNumber  string `json:"plate_number" gorm:"uniqueIndex;not null"`
	Type         string `json:"type"` // "pickup", "bus", "light_vehicle", ...
	Make         string `json:"make"`
	VehicleModel string `json:"model" gorm:"column:model"`
	Year         int    `json:"year"`
	Capacity     int    `json:"capacity"`
	FuelType     string `json:"fuel_type"`
	Status       string `json:"status" gorm:"default:available"`
	Location     string `json:"location"` // site / depot name

	// Optional GPS point for the depot, stored as WKB (SRID 4326).
	// Clients submit and receive GeoJSON; see vehicle_controller.
	Geolocation []byte `gorm:"type:bytea" json:"-"`
}
