// Package seed populates the store with fixed demo data. It is only run
// out-of-band via cmd/seeder, never from request handling.
package seed

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fleet_booking/internal/models"
)

// SeedAll inserts the demo users, vehicles and drivers. Every insert goes
// through FirstOrCreate so the seeder can be re-run safely.
func SeedAll(db *gorm.DB) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("could not hash demo password: %v", err)
	}
	password := string(hashed)

	users := []models.User{
		{Name: "Site Administrator", Email: "admin@miningcompany.com", Password: password, Role: models.RoleAdmin, Department: "Operations"},
		{Name: "Level 1 Approver", Email: "approver1@miningcompany.com", Password: password, Role: models.RoleApproverL1, Department: "Operations"},
		{Name: "Level 2 Approver", Email: "approver2@miningcompany.com", Password: password, Role: models.RoleApproverL2, Department: "Operations"},
		{Name: "Jane Employee", Email: "jane@miningcompany.com", Password: password, Role: models.RoleEmployee, Department: "Geology"},
		{Name: "John Employee", Email: "john@miningcompany.com", Password: password, Role: models.RoleEmployee, Department: "Maintenance"},
	}
	for _, u := range users {
		db.FirstOrCreate(&u, models.User{Email: u.Email})
	}

	vehicles := []models.Vehicle{
		{PlateNumber: "KBX 101A", Type: "pickup", Make: "Toyota", VehicleModel: "Hilux", Year: 2021, Capacity: 5, FuelType: "diesel", Status: models.VehicleAvailable, Location: "North Depot"},
		{PlateNumber: "KBX 202B", Type: "bus", Make: "Isuzu", VehicleModel: "NQR", Year: 2019, Capacity: 33, FuelType: "diesel", Status: models.VehicleAvailable, Location: "Main Gate"},
		{PlateNumber: "KBX 303C", Type: "light_vehicle", Make: "Nissan", VehicleModel: "Navara", Year: 2022, Capacity: 5, FuelType: "diesel", Status: models.VehicleMaintenance, Location: "Workshop"},
	}
	for _, v := range vehicles {
		db.FirstOrCreate(&v, models.Vehicle{PlateNumber: v.PlateNumber})
	}

	drivers := []models.Driver{
		{Name: "Peter Kamau", LicenseNumber: "DL-448291", LicenseExpiry: time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC), Status: models.DriverActive, ExperienceYears: 9, VehicleTypes: "pickup,light_vehicle"},
		{Name: "Mary Achieng", LicenseNumber: "DL-551730", LicenseExpiry: time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC), Status: models.DriverActive, ExperienceYears: 12, VehicleTypes: "bus,pickup"},
		{Name: "Samuel Otieno", LicenseNumber: "DL-662914", LicenseExpiry: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Status: models.DriverInactive, ExperienceYears: 4, VehicleTypes: "light_vehicle"},
	}
	for _, d := range drivers {
		db.FirstOrCreate(&d, models.Driver{LicenseNumber: d.LicenseNumber})
	}

	log.Println("Seeding complete")
}
