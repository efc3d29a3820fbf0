package permissions

import (
	"testing"

	"fleet_booking/internal/models"
)

func TestAdminHasEveryAction(t *testing.T) {
	for _, action := range []Action{
		VehicleRead, VehicleManage, DriverRead, DriverManage,
		BookingCreate, BookingRead, BookingCancel,
		ResolveL1, ResolveL2, UserRead, UserManage,
	} {
		if !Allowed(models.RoleAdmin, action) {
			t.Errorf("admin denied %s", action)
		}
	}
}

func TestEmployeeGrants(t *testing.T) {
	if !Allowed(models.RoleEmployee, BookingCreate) {
		t.Error("employee should create bookings")
	}
	if !Allowed(models.RoleEmployee, VehicleRead) {
		t.Error("employee should read vehicles")
	}
	if Allowed(models.RoleEmployee, VehicleManage) {
		t.Error("employee must not manage vehicles")
	}
	if Allowed(models.RoleEmployee, ResolveL1) {
		t.Error("employee must not resolve approvals")
	}
}

func TestApproverLevelsAreDisjoint(t *testing.T) {
	if !Allowed(models.RoleApproverL1, ResolveL1) || Allowed(models.RoleApproverL1, ResolveL2) {
		t.Error("approver_l1 should resolve level 1 only")
	}
	if !Allowed(models.RoleApproverL2, ResolveL2) || Allowed(models.RoleApproverL2, ResolveL1) {
		t.Error("approver_l2 should resolve level 2 only")
	}
}

func TestUnknownRoleDeniedEverything(t *testing.T) {
	if Allowed("intern", BookingRead) {
		t.Error("unknown role should have no grants")
	}
}

func TestResolveAction(t *testing.T) {
	if ResolveAction(models.LevelOne) != ResolveL1 {
		t.Error("level 1 should map to ResolveL1")
	}
	if ResolveAction(models.LevelTwo) != ResolveL2 {
		t.Error("level 2 should map to ResolveL2")
	}
}
