// Cleanup drops tables left behind by earlier schema revisions. Run
// manually: go run ./cmd/cleanup
package main

import (
	"log"

	"fleet_booking/internal/config"
)

// Tables from before approvals moved onto the bookings schema.
var deprecatedTables = []string{
	"sessions",
	"booking_audits",
}

func main() {
	config.InitDB()

	migrator := config.DB.Migrator()
	for _, table := range deprecatedTables {
		if !migrator.HasTable(table) {
			log.Printf("table %q not present, skipping", table)
			continue
		}
		if err := migrator.DropTable(table); err != nil {
			log.Fatalf("could not drop table %q: %v", table, err)
		}
		log.Printf("dropped table %q", table)
	}
}
