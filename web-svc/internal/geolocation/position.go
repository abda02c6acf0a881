// Package geolocation reads the device position the browser submits with
// the home page's location filter.
package geolocation

import (
	"errors"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const DefaultRadiusKm = 5

var RadiusOptions = []int{1, 5, 10, 20, 50}

var (
	ErrNoPosition      = errors.New("no position supplied")
	ErrInvalidPosition = errors.New("invalid position")
)

const (
	// ErrorParam is set by the page script when the browser refuses or
	// fails to report a position.
	ErrorParam = "geo_error"

	LocationErrorMessage = "Failed to get your location. Please make sure location services are enabled."
)

type Position struct {
	Lat float64
	Lng float64
}

// FromQuery parses the lat and lng parameters. Both must be present.
func FromQuery(query url.Values) (*Position, error) {
	rawLat := strings.TrimSpace(query.Get("lat"))
	rawLng := strings.TrimSpace(query.Get("lng"))
	if rawLat == "" && rawLng == "" {
		return nil, ErrNoPosition
	}
	if rawLat == "" || rawLng == "" {
		return nil, ErrInvalidPosition
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, ErrInvalidPosition
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil || lng < -180 || lng > 180 {
		return nil, ErrInvalidPosition
	}
	return &Position{Lat: lat, Lng: lng}, nil
}

// ParseRadius returns the radius in km when raw is one of RadiusOptions and
// DefaultRadiusKm otherwise.
func ParseRadius(raw string) int {
	radius, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !slices.Contains(RadiusOptions, radius) {
		return DefaultRadiusKm
	}
	return radius
}
