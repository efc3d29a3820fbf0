package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_booking/internal/config"
	"fleet_booking/internal/models"
	"fleet_booking/internal/workflow"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// vehicleResponse mirrors models.Vehicle but carries the depot geolocation
// as a GeoJSON string instead of raw WKB bytes.
type vehicleResponse struct {
	ID          uint           `json:"ID"`
	CreatedAt   time.Time      `json:"CreatedAt"`
	UpdatedAt   time.Time      `json:"UpdatedAt"`
	DeletedAt   gorm.DeletedAt `json:"DeletedAt,omitempty"`
	PlateNumber string         `json:"plate_number"`
	Type        string         `json:"type"`
	Make        string         `json:"make"`
	Model       string         `json:"model"`
	Year        int            `json:"year"`
	Capacity    int            `json:"capacity"`
	FuelType    string         `json:"fuel_type"`
	Status      string         `json:"status"`
	Location    string         `json:"location"`
	Geolocation string         `json:"geolocation,omitempty"`
}

func toVehicleResponse(v models.Vehicle) vehicleResponse {
	jsonGeom, err := convertWKBToGeoJSON(v.Geolocation)
	if err != nil {
		logrus.WithError(err).WithField("vehicle_id", v.ID).Warn("toVehicleResponse: bad stored geolocation")
	}
	return vehicleResponse{
		ID:          v.ID,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		DeletedAt:   v.DeletedAt,
		PlateNumber: v.PlateNumber,
		Type:        v.Type,
		Make:        v.Make,
		Model:       v.VehicleModel,
		Year:        v.Year,
		Capacity:    v.Capacity,
		FuelType:    v.FuelType,
		Status:      v.Status,
		Location:    v.Location,
		Geolocation: jsonGeom,
	}
}

// parseAndConvertGeometry parses a GeoJSON string into a geom.T and returns WKB bytes
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	err := gjson.Unmarshal([]byte(raw), &g)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ListVehicles returns a page of the vehicle inventory, optionally filtered
// by status.
func ListVehicles(c *gin.Context) {
	params, err := parsePageParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	q := config.DB.Model(&models.Vehicle{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, workflow.Internal("could not count vehicles: "+err.Error()))
		return
	}

	var vehicles []models.Vehicle
	if err := q.Order("id").Offset(params.offset()).Limit(params.Limit).Find(&vehicles).Error; err != nil {
		respondError(c, workflow.Internal("could not list vehicles: "+err.Error()))
		return
	}

	items := make([]vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		items = append(items, toVehicleResponse(v))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": newPaginationMeta(params, total),
	})
}

// CreateVehicle adds a vehicle to the inventory (admin only).
func CreateVehicle(c *gin.Context) {
	var input struct {
		PlateNumber string `json:"plate_number" binding:"required"`
		Type        string `json:"type" binding:"required"`
		Make        string `json:"make"`
		Model       string `json:"model"`
		Year        int    `json:"year"`
		Capacity    int    `json:"capacity"`
		FuelType    string `json:"fuel_type"`
		Location    string `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, workflow.Validation("Invalid vehicle input: "+err.Error()))
		return
	}

	vehicle := models.Vehicle{
		PlateNumber:  input.PlateNumber,
		Type:         input.Type,
		Make:         input.Make,
		VehicleModel: input.Model,
		Year:         input.Year,
		Capacity:     input.Capacity,
		FuelType:     input.FuelType,
		Status:       models.VehicleAvailable,
		Location:     input.Location,
	}

	if err := config.DB.Create(&vehicle).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, workflow.Conflict("plate number already registered"))
			return
		}
		respondError(c, workflow.Internal("could not create vehicle: "+err.Error()))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": toVehicleResponse(vehicle)})
}

// UpdateVehicle modifies inventory fields (admin only). Only provided fields
// are changed.
func UpdateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, c.Param("id")).Error; err != nil {
		respondError(c, workflow.NotFound("vehicle not found"))
		return
	}

	var input struct {
		Type     *string `json:"type"`
		Make     *string `json:"make"`
		Model    *string `json:"model"`
		Year     *int    `json:"year"`
		Capacity *int    `json:"capacity"`
		FuelType *string `json:"fuel_type"`
		Status   *string `json:"status"`
		Location *string `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, workflow.Validation("Invalid update: "+err.Error()))
		return
	}

	if input.Type != nil {
		vehicle.Type = *input.Type
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.VehicleModel = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Capacity != nil {
		vehicle.Capacity = *input.Capacity
	}
	if input.FuelType != nil {
		vehicle.FuelType = *input.FuelType
	}
	if input.Status != nil {
		switch *input.Status {
		case models.VehicleAvailable, models.VehicleMaintenance, models.VehicleRetired:
			vehicle.Status = *input.Status
		default:
			respondError(c, workflow.Validation("invalid vehicle status"))
			return
		}
	}
	if input.Location != nil {
		vehicle.Location = *input.Location
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		respondError(c, workflow.Internal("could not update vehicle: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": toVehicleResponse(vehicle)})
}

// SetVehicleLocation stores the vehicle's depot GPS point, submitted as a
// GeoJSON Point and persisted as WKB.
func SetVehicleLocation(c *gin.Context) {
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, c.Param("id")).Error; err != nil {
		respondError(c, workflow.NotFound("vehicle not found"))
		return
	}

	var input struct {
		Geolocation string `json:"geolocation" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, workflow.Validation("Invalid location payload: "+err.Error()))
		return
	}

	wkbBytes, err := parseAndConvertGeometry(input.Geolocation)
	if err != nil {
		logrus.WithError(err).Warn("SetVehicleLocation: bad GeoJSON")
		respondError(c, workflow.Validation("geolocation must be valid GeoJSON"))
		return
	}

	vehicle.Geolocation = wkbBytes
	if err := config.DB.Save(&vehicle).Error; err != nil {
		respondError(c, workflow.Internal("could not store vehicle location: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": toVehicleResponse(vehicle)})
}

// DeleteVehicle removes a vehicle from the inventory (admin only).
func DeleteVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, workflow.NotFound("vehicle not found"))
			return
		}
		respondError(c, workflow.Internal("could not load vehicle: "+err.Error()))
		return
	}

	if err := config.DB.Delete(&vehicle).Error; err != nil {
		respondError(c, workflow.Internal("could not delete vehicle: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}
