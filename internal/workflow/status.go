package workflow

import "fleet_booking/internal/models"

// Approver decisions accepted by ResolveApproval.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// DeriveBookingStatus computes the booking status from its two approvals.
// This is the only place booking status is decided; callers persist the
// result, never a hand-picked value.
//
// Level 1 gates level 2: a level-1 rejection rejects the booking outright
// (level 2 is cascaded to cancelled), and the booking only becomes approved
// once both levels have approved.
func DeriveBookingStatus(l1, l2 models.ApprovalStatus) models.BookingStatus {
	// A level-1 rejection wins over the cascaded level-2 cancellation.
	if l1 == models.ApprovalRejected {
		return models.BookingRejected
	}
	// Any other cancelled stage means the booking itself was cancelled.
	if l1 == models.ApprovalCancelled || l2 == models.ApprovalCancelled {
		return models.BookingCancelled
	}
	switch l1 {
	case models.ApprovalPending:
		return models.BookingPending
	case models.ApprovalApproved:
		switch l2 {
		case models.ApprovalApproved:
			return models.BookingApproved
		case models.ApprovalRejected:
			return models.BookingRejected
		default:
			return models.BookingPending
		}
	}
	return models.BookingPending
}

// RoleForLevel maps an approval level to the role that resolves it.
func RoleForLevel(level int) string {
	if level == models.LevelTwo {
		return models.RoleApproverL2
	}
	return models.RoleApproverL1
}
