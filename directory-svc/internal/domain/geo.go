package domain

import "math"

const EarthRadiusKm = 6371.0

const pointType = "Point"

// GeoPoint is a GeoJSON point. Coordinates are ordered [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func NewPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Type: pointType, Coordinates: []float64{lng, lat}}
}

func (p GeoPoint) Longitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

func (p GeoPoint) Latitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Normalize fills in the GeoJSON type when a caller omitted it.
func (p *GeoPoint) Normalize() {
	if p.Type == "" {
		p.Type = pointType
	}
}

func (p GeoPoint) Validate() error {
	if p.Type != pointType {
		return NewValidationError("coordinates must be a GeoJSON Point")
	}
	if len(p.Coordinates) != 2 {
		return NewValidationError("coordinates must be [longitude, latitude]")
	}
	if !validLongitude(p.Coordinates[0]) {
		return NewValidationError("longitude must be between -180 and 180")
	}
	if !validLatitude(p.Coordinates[1]) {
		return NewValidationError("latitude must be between -90 and 90")
	}
	return nil
}

// Circle is a spherical cap around a center point.
type Circle struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

func (c Circle) Validate() error {
	if !validLatitude(c.Lat) {
		return NewValidationError("lat must be between -90 and 90")
	}
	if !validLongitude(c.Lng) {
		return NewValidationError("lng must be between -180 and 180")
	}
	if math.IsNaN(c.RadiusKm) || math.IsInf(c.RadiusKm, 0) || c.RadiusKm <= 0 {
		return NewValidationError("radius must be a positive number of kilometers")
	}
	return nil
}

// RadiusRadians converts the radius to an angle on the Earth sphere.
func (c Circle) RadiusRadians() float64 {
	return c.RadiusKm / EarthRadiusKm
}

func validLatitude(v float64) bool {
	return !math.IsNaN(v) && v >= -90 && v <= 90
}

func validLongitude(v float64) bool {
	return !math.IsNaN(v) && v >= -180 && v <= 180
}
