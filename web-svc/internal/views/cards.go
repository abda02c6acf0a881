package views

import (
	"fmt"
	"math"
	"time"

	"business-directory/client"
	"business-directory/web-svc/internal/geolocation"
)

const MaxStars = 5

const dateLayout = "Jan 2, 2006"

// BusinessCard is one entry of the home page list.
type BusinessCard struct {
	ID          string
	Name        string
	Description string
	Category    string
	Location    string
	// Distance is empty unless a position was given and the business
	// has coordinates.
	Distance string
}

func NewBusinessCards(businesses []client.Business, from *geolocation.Position) []BusinessCard {
	cards := make([]BusinessCard, 0, len(businesses))
	for _, b := range businesses {
		card := BusinessCard{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			Category:    b.Category,
			Location:    b.Location,
		}
		if from != nil && b.Coordinates != nil && len(b.Coordinates.Coordinates) >= 2 {
			km := Haversine(from.Lat, from.Lng, b.Coordinates.Lat(), b.Coordinates.Lng())
			card.Distance = FormatDistance(km)
		}
		cards = append(cards, card)
	}
	return cards
}

type ReviewItem struct {
	ID      string
	Rating  int
	Stars   []bool
	Comment string
	Date    string
}

// BusinessDetail is the view model of the business page.
type BusinessDetail struct {
	ID           string
	Name         string
	Description  string
	Category     string
	Location     string
	Added        string
	Stars        []bool
	AverageLabel string
	TotalReviews int
	QRCodeURL    string
	Reviews      []ReviewItem
}

func NewBusinessDetail(business client.Business, summary client.ReviewSummary) BusinessDetail {
	detail := BusinessDetail{
		ID:           business.ID,
		Name:         business.Name,
		Description:  business.Description,
		Category:     business.Category,
		Location:     business.Location,
		Added:        formatDate(business.CreatedAt),
		Stars:        Stars(int(math.Round(summary.AverageRating))),
		AverageLabel: fmt.Sprintf("%.1f", summary.AverageRating),
		TotalReviews: summary.TotalReviews,
		QRCodeURL:    "/api/businesses/" + business.ID + "/qrcode",
		Reviews:      make([]ReviewItem, 0, len(summary.Reviews)),
	}
	for _, r := range summary.Reviews {
		detail.Reviews = append(detail.Reviews, ReviewItem{
			ID:      r.ID,
			Rating:  r.Rating,
			Stars:   Stars(r.Rating),
			Comment: r.Comment,
			Date:    formatDate(r.CreatedAt),
		})
	}
	return detail
}

// Stars returns MaxStars flags with the first filled ones set.
func Stars(filled int) []bool {
	stars := make([]bool, MaxStars)
	for i := 0; i < filled && i < MaxStars; i++ {
		stars[i] = true
	}
	return stars
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}
