package domain

import "time"

type Business struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Review struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"businessId" validate:"required"`
	Rating     int       `json:"rating" validate:"min=1,max=5"`
	Comment    string    `json:"comment" validate:"required,min=10"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewSummary is the payload of the per-business review listing.
type ReviewSummary struct {
	Reviews            []Review       `json:"reviews"`
	TotalReviews       int            `json:"totalReviews"`
	AverageRating      float64        `json:"averageRating"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
}

type BusinessInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
}

// BusinessPatch holds the fields of a partial update; nil means unchanged.
type BusinessPatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
}

type ReviewInput struct {
	BusinessID string `json:"businessId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type ReviewPatch struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// BusinessFilter narrows a business listing. Zero value lists everything.
type BusinessFilter struct {
	Near   *Circle
	Search string
}

const (
	EventBusinessCreated = "business.created"
	EventBusinessUpdated = "business.updated"
	EventBusinessDeleted = "business.deleted"
	EventReviewCreated   = "review.created"
	EventReviewUpdated   = "review.updated"
	EventReviewDeleted   = "review.deleted"
)

type Event struct {
	Type       string    `json:"type"`
	BusinessID string    `json:"businessId"`
	ReviewID   string    `json:"reviewId,omitempty"`
	Rating     int       `json:"rating,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
