// internal/models/booking.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// BookingStatus is derived from the booking's two approvals, never set
// independently. See workflow.DeriveBookingStatus.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	gorm.Model
	Reference string `json:"reference" gorm:"uniqueIndex;size:36"`

	UserID    uint `json:"user_id" gorm:"index;not null"`
	VehicleID uint `json:"vehicle_id" gorm:"index;not null"`
	DriverID  uint `json:"driver_id" gorm:"index;not null"`

	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Department string    `json:"department"`
	Purpose    string    `json:"purpose"`

	Status          BookingStatus `json:"status" gorm:"type:varchar(16);index;default:pending"`
	RejectionReason string        `json:"rejection_reason,omitempty"`

	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Vehicle Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Driver  Driver  `gorm:"foreignKey:DriverID" json:"driver,omitempty"`

	// Exactly two rows, level 1 and level 2, created with the booking.
	// Enforced by the unique (booking_id, level) index on Approval.
	Approvals []Approval `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"approvals,omitempty"`
}

// ApprovalAt returns the approval for the given level, or nil.
func (b *Booking) ApprovalAt(level int) *Approval {
	for i := range b.Approvals {
		if b.Approvals[i].Level == level {
			return &b.Approvals[i]
		}
	}
	return nil
}
