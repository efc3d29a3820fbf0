// internal/models/approval.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// ApprovalStatus tracks one stage of the two-level sign-off chain.
type ApprovalStatus string

const (
	ApprovalPending   ApprovalStatus = "pending"
	ApprovalApproved  ApprovalStatus = "approved"
	ApprovalRejected  ApprovalStatus = "rejected"
	ApprovalCancelled ApprovalStatus = "cancelled"
)

// Approval levels. Level 2 only resolves after level 1 approved, and is
// cancelled whenever level 1 is rejected.
const (
	LevelOne = 1
	LevelTwo = 2
)

type Approval struct {
	gorm.Model
	BookingID  uint `json:"booking_id" gorm:"uniqueIndex:idx_booking_level;not null"`
	ApproverID uint `json:"approver_id" gorm:"index;not null"`
	Level      int  `json:"level" gorm:"uniqueIndex:idx_booking_level;not null"`

	Status     ApprovalStatus `json:"status" gorm:"type:varchar(16);default:pending"`
	Comments   string         `json:"comments"`
	ResolvedAt *time.Time     `json:"resolved_at,omitempty"`

	Approver User `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
}

// Resolved reports whether this approval has left the pending state.
func (a *Approval) Resolved() bool {
	return a.Status != ApprovalPending
}
