package workflow

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fleet_booking/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestCreateBookingOverlapConflict(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "vehicles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "plate_number", "status"}).
			AddRow(1, "KBX 101A", models.VehicleAvailable))
	mock.ExpectQuery(`SELECT \* FROM "drivers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "license_number", "status"}).
			AddRow(1, "DL-448291", models.DriverActive))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	_, err := CreateBooking(db, CreateBookingInput{
		Requester: &models.User{Model: gorm.Model{ID: 4}, Role: models.RoleEmployee, Department: "Geology"},
		VehicleID: 1,
		DriverID:  1,
		StartDate: start,
		EndDate:   start.Add(2 * time.Hour),
		Purpose:   "site visit",
	})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsBadDateRange(t *testing.T) {
	db, _ := newMockDB(t)

	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	_, err := CreateBooking(db, CreateBookingInput{
		Requester: &models.User{Model: gorm.Model{ID: 4}, Role: models.RoleEmployee},
		VehicleID: 1,
		DriverID:  1,
		StartDate: start,
		EndDate:   start, // empty interval
	})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestResolveApprovalAlreadyResolved(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "vehicle_id", "driver_id", "status"}).
			AddRow(7, 4, 1, 1, models.BookingPending))
	mock.ExpectQuery(`SELECT \* FROM "approvals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "approver_id", "level", "status"}).
			AddRow(21, 7, 2, 1, models.ApprovalApproved).
			AddRow(22, 7, 3, 2, models.ApprovalPending))
	mock.ExpectRollback()

	admin := &models.User{Model: gorm.Model{ID: 1}, Role: models.RoleAdmin}
	_, err := ResolveApproval(db, 7, 1, admin, DecisionApprove, "")
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveApprovalLevelTwoBeforeLevelOne(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "vehicle_id", "driver_id", "status"}).
			AddRow(7, 4, 1, 1, models.BookingPending))
	mock.ExpectQuery(`SELECT \* FROM "approvals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "approver_id", "level", "status"}).
			AddRow(21, 7, 2, 1, models.ApprovalPending).
			AddRow(22, 7, 3, 2, models.ApprovalPending))
	mock.ExpectRollback()

	admin := &models.User{Model: gorm.Model{ID: 1}, Role: models.RoleAdmin}
	_, err := ResolveApproval(db, 7, 2, admin, DecisionApprove, "")
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveApprovalWrongApproverForbidden(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "vehicle_id", "driver_id", "status"}).
			AddRow(7, 4, 1, 1, models.BookingPending))
	mock.ExpectQuery(`SELECT \* FROM "approvals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "approver_id", "level", "status"}).
			AddRow(21, 7, 2, 1, models.ApprovalPending).
			AddRow(22, 7, 3, 2, models.ApprovalPending))
	mock.ExpectRollback()

	// Holds the right role but is not the designated approver (id 2).
	other := &models.User{Model: gorm.Model{ID: 9}, Role: models.RoleApproverL1}
	_, err := ResolveApproval(db, 7, 1, other, DecisionApprove, "")
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Cancelling after level 1 has already approved must still push both
// approvals to cancelled, so the stored booking status keeps matching the
// derivation of its approval pair.
func TestCancelBookingAfterLevelOneApproval(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE "bookings"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "vehicle_id", "driver_id", "status"}).
			AddRow(7, 4, 1, 1, models.BookingPending))
	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE \(?id = \$\d+ AND status = \$\d+\)?`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The cascade touches every approval that is not cancelled yet, including
	// the already-approved level 1 stage.
	mock.ExpectExec(`UPDATE "approvals" SET .+ WHERE \(?booking_id = \$\d+ AND status <> \$\d+\)?`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	// Reload after commit.
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE "bookings"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "vehicle_id", "driver_id", "status"}).
			AddRow(7, 4, 1, 1, models.BookingCancelled))
	mock.ExpectQuery(`SELECT \* FROM "approvals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "approver_id", "level", "status"}).
			AddRow(21, 7, 2, 1, models.ApprovalCancelled).
			AddRow(22, 7, 3, 2, models.ApprovalCancelled))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(`SELECT \* FROM "vehicles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "drivers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	requester := &models.User{Model: gorm.Model{ID: 4}, Role: models.RoleEmployee}
	booking, err := CancelBooking(db, 7, requester)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, booking.Status)

	l1 := booking.ApprovalAt(models.LevelOne)
	l2 := booking.ApprovalAt(models.LevelTwo)
	require.NotNil(t, l1)
	require.NotNil(t, l2)
	assert.Equal(t, models.ApprovalCancelled, l1.Status)
	assert.Equal(t, models.ApprovalCancelled, l2.Status)
	assert.Equal(t, booking.Status, DeriveBookingStatus(l1.Status, l2.Status))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingOnlyRequesterOrAdmin(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status"}).
			AddRow(7, 4, models.BookingPending))
	mock.ExpectRollback()

	stranger := &models.User{Model: gorm.Model{ID: 99}, Role: models.RoleEmployee}
	_, err := CancelBooking(db, 7, stranger)
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
