// Package docs renders printable documents for approved bookings.
package docs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"fleet_booking/internal/models"
)

// BuildTripSheet renders the trip sheet PDF handed to the driver for an
// approved booking. The caller is responsible for checking the booking
// status first.
func BuildTripSheet(b *models.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Sheet", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "VEHICLE TRIP SHEET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reference      : %s", safe(b.Reference, "-")),
		fmt.Sprintf("Requested by   : %s (%s)", safe(b.User.Name, "-"), safe(b.Department, "-")),
		fmt.Sprintf("Purpose        : %s", safe(b.Purpose, "-")),
		fmt.Sprintf("Vehicle        : %s %s (%s)", safe(b.Vehicle.Make, "-"), safe(b.Vehicle.VehicleModel, ""), safe(b.Vehicle.PlateNumber, "-")),
		fmt.Sprintf("Driver         : %s (license %s)", safe(b.Driver.Name, "-"), safe(b.Driver.LicenseNumber, "-")),
		fmt.Sprintf("From           : %s", b.StartDate.Format("2006-01-02 15:04")),
		fmt.Sprintf("To             : %s", b.EndDate.Format("2006-01-02 15:04")),
		fmt.Sprintf("Status         : %s", b.Status),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This trip sheet covers one approved booking. Keep it in the vehicle for the duration of the trip.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
