// internal/models/driver.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Driver status values.
const (
	DriverActive   = "active"
	DriverInactive = "inactive"
)

type Driver struct {
	gorm.Model
	Name            string    `json:"name"`
	LicenseNumber   string    `json:"license_number" gorm:"uniqueIndex;not null"`
	LicenseExpiry   time.Time `json:"license_expiry"`
	Status          string    `json:"status" gorm:"default:active"`
	ExperienceYears int       `json:"experience_years"`

	// Comma-separated list of vehicle types the driver is cleared for,
	// e.g. "pickup,bus".
	VehicleTypes string `json:"vehicle_types"`
}
