package views

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// kmNorth returns the latitude delta that is km kilometers along a meridian.
func kmNorth(km float64) float64 {
	return km / EarthRadiusKm * 180 / math.Pi
}

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 0, Haversine(45.52, -122.68, 45.52, -122.68), 1e-9)
	assert.InDelta(t, 343.5, Haversine(48.8566, 2.3522, 51.5074, -0.1278), 1.0)

	// symmetric
	assert.InDelta(t,
		Haversine(48.8566, 2.3522, 51.5074, -0.1278),
		Haversine(51.5074, -0.1278, 48.8566, 2.3522),
		1e-9)
}

func TestHaversine_RadiusBoundary(t *testing.T) {
	const radius = 5.0

	inside := Haversine(0, 0, kmNorth(4.9), 0)
	outside := Haversine(0, 0, kmNorth(5.1), 0)

	assert.InDelta(t, 4.9, inside, 1e-6)
	assert.InDelta(t, 5.1, outside, 1e-6)
	assert.LessOrEqual(t, inside, radius)
	assert.Greater(t, outside, radius)
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		km       float64
		expected string
	}{
		{0, "0m"},
		{0.45, "450m"},
		{0.4504, "450m"},
		{0.9994, "999m"},
		{1, "1.0km"},
		{1.25, "1.3km"},
		{12.34, "12.3km"},
		{49.96, "50.0km"},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.expected, FormatDistance(testCase.km), "km=%v", testCase.km)
	}
}
