package client

import "time"

type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Lat and Lng read the GeoJSON [lng, lat] ordering.
func (p GeoPoint) Lat() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

func (p GeoPoint) Lng() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

type Business struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Review struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"businessId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ReviewSummary struct {
	Reviews            []Review       `json:"reviews"`
	TotalReviews       int            `json:"totalReviews"`
	AverageRating      float64        `json:"averageRating"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
}

type NewBusiness struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
}

type BusinessPatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
}

type NewReview struct {
	BusinessID string `json:"businessId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type ReviewPatch struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// Near restricts a listing to a radius around a point.
type Near struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

type ListOptions struct {
	Near   *Near
	Search string
}
