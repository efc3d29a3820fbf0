package workflow

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet_booking/internal/models"
)

// CreateBookingInput carries everything needed to submit a booking.
type CreateBookingInput struct {
	Requester  *models.User
	VehicleID  uint
	DriverID   uint
	StartDate  time.Time
	EndDate    time.Time
	Purpose    string
	Department string
}

// CreateBooking validates the request, checks for interval overlaps and
// atomically creates the booking together with its two pending approvals.
// The vehicle and driver rows are locked for the duration of the transaction
// so two concurrent requests for the same interval cannot both pass the
// overlap check.
func CreateBooking(db *gorm.DB, in CreateBookingInput) (*models.Booking, error) {
	if in.Requester == nil {
		return nil, Internal("no requester")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, Validation("start_date and end_date are required")
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, Validation("end_date must be after start_date")
	}
	if in.Department == "" {
		in.Department = in.Requester.Department
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, Internal("could not start transaction")
	}

	var vehicle models.Vehicle
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&vehicle, in.VehicleID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("vehicle not found")
		}
		return nil, Internal("could not load vehicle")
	}
	if vehicle.Status != models.VehicleAvailable {
		tx.Rollback()
		return nil, Validation("vehicle is not available for booking")
	}

	var driver models.Driver
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&driver, in.DriverID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("driver not found")
		}
		return nil, Internal("could not load driver")
	}
	if driver.Status != models.DriverActive {
		tx.Rollback()
		return nil, Validation("driver is not active")
	}

	// Overlap check against every booking still in play for the same
	// vehicle or driver. [start,end) intervals intersect when
	// start < other.end && end > other.start.
	var overlaps int64
	err := tx.Model(&models.Booking{}).
		Where("(vehicle_id = ? OR driver_id = ?)", in.VehicleID, in.DriverID).
		Where("status IN ?", []models.BookingStatus{models.BookingPending, models.BookingApproved}).
		Where("start_date < ? AND end_date > ?", in.EndDate, in.StartDate).
		Count(&overlaps).Error
	if err != nil {
		tx.Rollback()
		return nil, Internal("could not run overlap check")
	}
	if overlaps > 0 {
		tx.Rollback()
		return nil, Conflict("vehicle or driver already booked for an overlapping period")
	}

	approverL1, err := designatedApprover(tx, models.RoleApproverL1)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	approverL2, err := designatedApprover(tx, models.RoleApproverL2)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	booking := models.Booking{
		Reference:  uuid.NewString(),
		UserID:     in.Requester.ID,
		VehicleID:  in.VehicleID,
		DriverID:   in.DriverID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Department: in.Department,
		Purpose:    in.Purpose,
		Status:     models.BookingPending,
		Approvals: []models.Approval{
			{Level: models.LevelOne, ApproverID: approverL1.ID, Status: models.ApprovalPending},
			{Level: models.LevelTwo, ApproverID: approverL2.ID, Status: models.ApprovalPending},
		},
	}
	if err := tx.Create(&booking).Error; err != nil {
		tx.Rollback()
		return nil, Internal("could not create booking")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, Internal("could not commit booking")
	}
	return loadBooking(db, booking.ID)
}

// ResolveApproval applies an approve/reject decision to one approval level
// and recomputes the booking status. Double resolution is rejected with an
// invalid-state error via a compare-and-set on status=pending.
func ResolveApproval(db *gorm.DB, bookingID uint, level int, approver *models.User, decision, comments string) (*models.Booking, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, Validation("decision must be approve or reject")
	}
	if level != models.LevelOne && level != models.LevelTwo {
		return nil, Validation("approval level must be 1 or 2")
	}
	if approver == nil {
		return nil, Internal("no approver")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, Internal("could not start transaction")
	}

	var booking models.Booking
	if err := tx.Preload("Approvals").First(&booking, bookingID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("booking not found")
		}
		return nil, Internal("could not load booking")
	}

	target := booking.ApprovalAt(level)
	if target == nil {
		tx.Rollback()
		return nil, Internal("booking is missing its approval chain")
	}

	if approver.Role != models.RoleAdmin {
		if approver.Role != RoleForLevel(level) || approver.ID != target.ApproverID {
			tx.Rollback()
			return nil, Forbidden("not the designated approver for this level")
		}
	}

	if booking.Status != models.BookingPending {
		tx.Rollback()
		return nil, InvalidState("booking is already " + string(booking.Status))
	}
	if target.Resolved() {
		tx.Rollback()
		return nil, InvalidState("approval already resolved")
	}
	if level == models.LevelTwo {
		l1 := booking.ApprovalAt(models.LevelOne)
		if l1 == nil || l1.Status != models.ApprovalApproved {
			tx.Rollback()
			return nil, InvalidState("level 1 approval has not been approved yet")
		}
	}

	newStatus := models.ApprovalApproved
	if decision == DecisionReject {
		newStatus = models.ApprovalRejected
	}
	now := time.Now()

	res := tx.Model(&models.Approval{}).
		Where("id = ? AND status = ?", target.ID, models.ApprovalPending).
		Updates(map[string]interface{}{
			"status":      newStatus,
			"comments":    comments,
			"resolved_at": now,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, Internal("could not update approval")
	}
	if res.RowsAffected == 0 {
		// Lost the race against another resolver.
		tx.Rollback()
		return nil, InvalidState("approval already resolved")
	}
	target.Status = newStatus

	// A level-1 rejection cancels the level-2 stage outright.
	if level == models.LevelOne && newStatus == models.ApprovalRejected {
		if err := tx.Model(&models.Approval{}).
			Where("booking_id = ? AND level = ? AND status = ?", bookingID, models.LevelTwo, models.ApprovalPending).
			Updates(map[string]interface{}{"status": models.ApprovalCancelled, "resolved_at": now}).Error; err != nil {
			tx.Rollback()
			return nil, Internal("could not cascade level 2 cancellation")
		}
		if l2 := booking.ApprovalAt(models.LevelTwo); l2 != nil {
			l2.Status = models.ApprovalCancelled
		}
	}

	l1 := booking.ApprovalAt(models.LevelOne)
	l2 := booking.ApprovalAt(models.LevelTwo)
	derived := DeriveBookingStatus(l1.Status, l2.Status)

	updates := map[string]interface{}{"status": derived}
	if derived == models.BookingRejected {
		updates["rejection_reason"] = comments
	}
	if err := tx.Model(&models.Booking{}).Where("id = ?", bookingID).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, Internal("could not update booking status")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, Internal("could not commit approval")
	}
	return loadBooking(db, bookingID)
}

// CancelBooking cancels a pending booking and both of its approvals. Only the
// original requester or an admin may cancel.
func CancelBooking(db *gorm.DB, bookingID uint, requester *models.User) (*models.Booking, error) {
	if requester == nil {
		return nil, Internal("no requester")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, Internal("could not start transaction")
	}

	var booking models.Booking
	if err := tx.First(&booking, bookingID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("booking not found")
		}
		return nil, Internal("could not load booking")
	}

	if requester.Role != models.RoleAdmin && requester.ID != booking.UserID {
		tx.Rollback()
		return nil, Forbidden("only the requester or an admin can cancel a booking")
	}

	res := tx.Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, models.BookingPending).
		Update("status", models.BookingCancelled)
	if res.Error != nil {
		tx.Rollback()
		return nil, Internal("could not cancel booking")
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, InvalidState("only pending bookings can be cancelled")
	}

	// Both approvals move to cancelled regardless of how far the chain got,
	// so the booking status stays the derivation of its approval pair.
	now := time.Now()
	if err := tx.Model(&models.Approval{}).
		Where("booking_id = ? AND status <> ?", bookingID, models.ApprovalCancelled).
		Updates(map[string]interface{}{"status": models.ApprovalCancelled, "resolved_at": now}).Error; err != nil {
		tx.Rollback()
		return nil, Internal("could not cancel approvals")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, Internal("could not commit cancellation")
	}
	return loadBooking(db, bookingID)
}

// designatedApprover picks the role-holder who signs off new bookings at one
// level: the longest-standing user carrying the role.
func designatedApprover(tx *gorm.DB, role string) (*models.User, error) {
	var u models.User
	if err := tx.Where("role = ?", role).Order("id").First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Validation("no " + role + " user configured to receive approvals")
		}
		return nil, Internal("could not look up approver")
	}
	return &u, nil
}

func loadBooking(db *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := db.Preload("Approvals", func(q *gorm.DB) *gorm.DB { return q.Order("level") }).
		Preload("User").
		Preload("Vehicle").
		Preload("Driver").
		First(&booking, id).Error
	if err != nil {
		return nil, Internal("could not reload booking")
	}
	return &booking, nil
}
