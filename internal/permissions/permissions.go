package permissions

import "fleet_booking/internal/models"

// Action names one authorizable operation. Route groups attach a required
// action via middleware.RequirePermission instead of comparing role strings
// inline.
type Action string

const (
	VehicleRead   Action = "vehicle.read"
	VehicleManage Action = "vehicle.manage"
	DriverRead    Action = "driver.read"
	DriverManage  Action = "driver.manage"
	BookingCreate Action = "booking.create"
	BookingRead   Action = "booking.read"
	BookingCancel Action = "booking.cancel"
	ResolveL1     Action = "approval.resolve.l1"
	ResolveL2     Action = "approval.resolve.l2"
	UserRead      Action = "user.read"
	UserManage    Action = "user.manage"
)

// grants is the full permission table. Admin is handled in Allowed and is
// not listed per-action.
var grants = map[string]map[Action]struct{}{
	models.RoleEmployee: actionSet(
		VehicleRead, DriverRead,
		BookingCreate, BookingRead, BookingCancel,
	),
	models.RoleApproverL1: actionSet(
		VehicleRead, DriverRead,
		BookingCreate, BookingRead, BookingCancel,
		ResolveL1,
	),
	models.RoleApproverL2: actionSet(
		VehicleRead, DriverRead,
		BookingCreate, BookingRead, BookingCancel,
		ResolveL2,
	),
}

// Allowed reports whether the role may perform the action. Admin may perform
// everything.
func Allowed(role string, action Action) bool {
	if role == models.RoleAdmin {
		return true
	}
	set, ok := grants[role]
	if !ok {
		return false
	}
	_, ok = set[action]
	return ok
}

// ResolveAction maps an approval level to its resolve action.
func ResolveAction(level int) Action {
	if level == models.LevelTwo {
		return ResolveL2
	}
	return ResolveL1
}

func actionSet(actions ...Action) map[Action]struct{} {
	set := make(map[Action]struct{}, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}
