// Seeder populates the database with demo users, vehicles and drivers.
// Run manually: go run ./cmd/seeder
package main

import (
	"log"

	"fleet_booking/internal/config"
	"fleet_booking/internal/seed"
)

func main() {
	log.Println("Seeding demo data...")

	// InitDB loads .env itself and runs migrations first.
	config.InitDB()

	seed.SeedAll(config.DB)
}
