package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_booking/internal/config"
	"fleet_booking/internal/models"
	"fleet_booking/internal/workflow"
)

// ListDrivers returns a page of driver records, optionally filtered by
// status.
func ListDrivers(c *gin.Context) {
	params, err := parsePageParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	q := config.DB.Model(&models.Driver{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, workflow.Internal("could not count drivers: "+err.Error()))
		return
	}

	var drivers []models.Driver
	if err := q.Order("id").Offset(params.offset()).Limit(params.Limit).Find(&drivers).Error; err != nil {
		respondError(c, workflow.Internal("could not list drivers: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      drivers,
		"pagination": newPaginationMeta(params, total),
	})
}

// CreateDriver registers a driver (admin only).
func CreateDriver(c *gin.Context) {
	var input struct {
		Name            string    `json:"name" binding:"required"`
		LicenseNumber   string    `json:"license_number" binding:"required"`
		LicenseExpiry   time.Time `json:"license_expiry" binding:"required"`
		ExperienceYears int       `json:"experience_years"`
		VehicleTypes    string    `json:"vehicle_types"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, workflow.Validation("Invalid driver input: "+err.Error()))
		return
	}

	driver := models.Driver{
		Name:            input.Name,
		LicenseNumber:   input.LicenseNumber,
		LicenseExpiry:   input.LicenseExpiry,
		Status:          models.DriverActive,
		ExperienceYears: input.ExperienceYears,
		VehicleTypes:    input.VehicleTypes,
	}

	if err := config.DB.Create(&driver).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, workflow.Conflict("license number already registered"))
			return
		}
		respondError(c, workflow.Internal("could not create driver: "+err.Error()))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

// UpdateDriver modifies a driver record (admin only).
func UpdateDriver(c *gin.Context) {
	var driver models.Driver
	if err := config.DB.First(&driver, c.Param("id")).Error; err != nil {
		respondError(c, workflow.NotFound("driver not found"))
		return
	}

	var input struct {
		Name            *string    `json:"name"`
		LicenseExpiry   *time.Time `json:"license_expiry"`
		Status          *string    `json:"status"`
		ExperienceYears *int       `json:"experience_years"`
		VehicleTypes    *string    `json:"vehicle_types"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, workflow.Validation("Invalid update: "+err.Error()))
		return
	}

	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.LicenseExpiry != nil {
		driver.LicenseExpiry = *input.LicenseExpiry
	}
	if input.Status != nil {
		switch *input.Status {
		case models.DriverActive, models.DriverInactive:
			driver.Status = *input.Status
		default:
			respondError(c, workflow.Validation("invalid driver status"))
			return
		}
	}
	if input.ExperienceYears != nil {
		driver.ExperienceYears = *input.ExperienceYears
	}
	if input.VehicleTypes != nil {
		driver.VehicleTypes = *input.VehicleTypes
	}

	if err := config.DB.Save(&driver).Error; err != nil {
		respondError(c, workflow.Internal("could not update driver: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

// DeleteDriver removes a driver record (admin only).
func DeleteDriver(c *gin.Context) {
	var driver models.Driver
	if err := config.DB.First(&driver, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, workflow.NotFound("driver not found"))
			return
		}
		respondError(c, workflow.Internal("could not load driver: "+err.Error()))
		return
	}

	if err := config.DB.Delete(&driver).Error; err != nil {
		respondError(c, workflow.Internal("could not delete driver: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
}
