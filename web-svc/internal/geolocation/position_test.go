package geolocation

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromQuery(t *testing.T) {
	tests := []struct {
		name          string
		query         url.Values
		expected      *Position
		expectedError error
	}{
		{
			name:     "valid",
			query:    url.Values{"lat": {"45.52"}, "lng": {"-122.68"}},
			expected: &Position{Lat: 45.52, Lng: -122.68},
		},
		{
			name:          "absent",
			query:         url.Values{},
			expectedError: ErrNoPosition,
		},
		{
			name:          "only_lat",
			query:         url.Values{"lat": {"45.52"}},
			expectedError: ErrInvalidPosition,
		},
		{
			name:          "not_a_number",
			query:         url.Values{"lat": {"north"}, "lng": {"1"}},
			expectedError: ErrInvalidPosition,
		},
		{
			name:          "lat_out_of_range",
			query:         url.Values{"lat": {"91"}, "lng": {"0"}},
			expectedError: ErrInvalidPosition,
		},
		{
			name:          "lng_out_of_range",
			query:         url.Values{"lat": {"0"}, "lng": {"-180.5"}},
			expectedError: ErrInvalidPosition,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			position, err := FromQuery(testCase.query)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				assert.Nil(t, position)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, position)
		})
	}
}

func TestParseRadius(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"1", 1},
		{"20", 20},
		{"50", 50},
		{"", DefaultRadiusKm},
		{"7", DefaultRadiusKm},
		{"abc", DefaultRadiusKm},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.expected, ParseRadius(testCase.raw), "raw=%q", testCase.raw)
	}
}
