package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_booking/internal/config"
	"fleet_booking/internal/docs"
	"fleet_booking/internal/models"
	"fleet_booking/internal/permissions"
	"fleet_booking/internal/workflow"
)

// CreateBooking submits a vehicle booking on behalf of the authenticated
// user. The booking and both approval rows are created in one transaction;
// overlapping intervals for the same vehicle or driver are rejected.
func CreateBooking(c *gin.Context) {
	var input struct {
		VehicleID  uint      `json:"vehicle_id" binding:"required"`
		DriverID   uint      `json:"driver_id" binding:"required"`
		StartDate  time.Time `json:"start_date" binding:"required"`
		EndDate    time.Time `json:"end_date" binding:"required"`
		Purpose    string    `json:"purpose"`
		Department string    `json:"department"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, workflow.Validation("Invalid booking input: "+err.Error()))
		return
	}

	user, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	booking, err := workflow.CreateBooking(config.DB, workflow.CreateBookingInput{
		Requester:  user,
		VehicleID:  input.VehicleID,
		DriverID:   input.DriverID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Purpose:    input.Purpose,
		Department: input.Department,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"reference":  booking.Reference,
		"user_id":    user.ID,
	}).Info("booking created")
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// ListBookings returns a page of bookings. Employees only ever see their
// own; approvers and admins see everything. Optional status filter.
func ListBookings(c *gin.Context) {
	params, err := parsePageParams(c)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	q := config.DB.Model(&models.Booking{})
	if user.Role == models.RoleEmployee {
		q = q.Where("user_id = ?", user.ID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, workflow.Internal("could not count bookings: "+err.Error()))
		return
	}

	var bookings []models.Booking
	err = q.Preload("Approvals", func(db *gorm.DB) *gorm.DB { return db.Order("level") }).
		Preload("User").
		Preload("Vehicle").
		Preload("Driver").
		Order("created_at DESC").
		Offset(params.offset()).Limit(params.Limit).
		Find(&bookings).Error
	if err != nil {
		respondError(c, workflow.Internal("could not list bookings: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      bookings,
		"pagination": newPaginationMeta(params, total),
	})
}

// GetBooking returns one booking with its approval chain.
func GetBooking(c *gin.Context) {
	_, booking, err := bookingForViewer(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// ResolveApproval applies an approve/reject decision to the approval at
// :level of booking :id.
func ResolveApproval(c *gin.Context) {
	bookingID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, workflow.Validation("invalid booking id"))
		return
	}
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		respondError(c, workflow.Validation("invalid approval level"))
		return
	}

	var input struct {
		Decision string `json:"decision" binding:"required"`
		Comments string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, workflow.Validation("Invalid decision payload: "+err.Error()))
		return
	}

	user, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if !permissions.Allowed(user.Role, permissions.ResolveAction(level)) {
		respondError(c, workflow.Forbidden("role may not resolve approvals at this level"))
		return
	}

	booking, err := workflow.ResolveApproval(config.DB, bookingID, level, user, input.Decision, input.Comments)
	if err != nil {
		respondError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"level":      level,
		"decision":   input.Decision,
		"status":     booking.Status,
	}).Info("approval resolved")
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// CancelBooking cancels a pending booking on behalf of its requester (or an
// admin).
func CancelBooking(c *gin.Context) {
	bookingID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, workflow.Validation("invalid booking id"))
		return
	}

	user, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	booking, err := workflow.CancelBooking(config.DB, bookingID, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// TripSheet streams a PDF trip sheet for an approved booking.
func TripSheet(c *gin.Context) {
	_, booking, err := bookingForViewer(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if booking.Status != models.BookingApproved {
		respondError(c, workflow.InvalidState("trip sheets are only issued for approved bookings"))
		return
	}

	pdf, err := docs.BuildTripSheet(booking)
	if err != nil {
		respondError(c, workflow.Internal("could not render trip sheet: "+err.Error()))
		return
	}

	filename := fmt.Sprintf("trip-sheet-%d.pdf", booking.ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// bookingForViewer loads booking :id and checks the caller may see it:
// admins and approvers see everything, employees only their own bookings.
func bookingForViewer(c *gin.Context) (*models.User, *models.Booking, error) {
	bookingID, err := parseID(c.Param("id"))
	if err != nil {
		return nil, nil, workflow.Validation("invalid booking id")
	}

	user, err := currentUser(c)
	if err != nil {
		return nil, nil, err
	}

	var booking models.Booking
	err = config.DB.Preload("Approvals", func(db *gorm.DB) *gorm.DB { return db.Order("level") }).
		Preload("User").
		Preload("Vehicle").
		Preload("Driver").
		First(&booking, bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, workflow.NotFound("booking not found")
		}
		return nil, nil, workflow.Internal("could not load booking: " + err.Error())
	}

	if user.Role == models.RoleEmployee && booking.UserID != user.ID {
		return nil, nil, workflow.Forbidden("booking belongs to another user")
	}
	return user, &booking, nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
