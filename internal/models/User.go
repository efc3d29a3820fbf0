package models

import "gorm.io/gorm"

// Roles recognised by the permission table. Every user holds exactly one.
const (
	RoleAdmin      = "admin"
	RoleApproverL1 = "approver_l1"
	RoleApproverL2 = "approver_l2"
	RoleEmployee   = "employee"
)

type User struct {
	gorm.Model
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"uniqueIndex;not null"`
	Password   string `json:"-"` // bcrypt hash, never returned in responses
	Role       string `json:"role"`
	Department string `json:"department"`

	Bookings []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleApproverL1, RoleApproverL2, RoleEmployee:
		return true
	}
	return false
}
