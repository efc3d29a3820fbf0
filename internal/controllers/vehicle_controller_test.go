package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet_booking/internal/models"
)

// A corrupt stored geolocation must not break serving the vehicle; the
// response simply omits the geolocation field.
func TestToVehicleResponseBadGeolocationBytes(t *testing.T) {
	v := models.Vehicle{
		PlateNumber: "KBX 101A",
		Geolocation: []byte{0xde, 0xad, 0xbe, 0xef},
	}
	resp := toVehicleResponse(v)
	assert.Empty(t, resp.Geolocation)
	assert.Equal(t, "KBX 101A", resp.PlateNumber)
}

func TestGeolocationRoundTrip(t *testing.T) {
	raw := `{"type":"Point","coordinates":[36.8219,-1.2921]}`

	wkbBytes, err := parseAndConvertGeometry(raw)
	require.NoError(t, err)
	require.NotEmpty(t, wkbBytes)

	out, err := convertWKBToGeoJSON(wkbBytes)
	require.NoError(t, err)
	assert.JSONEq(t, raw, out)
}

func TestConvertWKBToGeoJSONEmptyInput(t *testing.T) {
	out, err := convertWKBToGeoJSON(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
