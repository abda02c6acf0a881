package views

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"business-directory/client"

	"github.com/go-playground/validator/v10"
)

const DefaultRating = 5

var (
	ErrFieldsRequired = errors.New("All fields are required")
	ErrRatingRange    = errors.New("Rating must be between 1 and 5")
	ErrReviewTooShort = errors.New("Review must be at least 10 characters")
)

var validate = validator.New()

type BusinessForm struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	Category    string `validate:"required"`
	Location    string `validate:"required"`
}

func ParseBusinessForm(values url.Values) BusinessForm {
	return BusinessForm{
		Name:        strings.TrimSpace(values.Get("name")),
		Description: strings.TrimSpace(values.Get("description")),
		Category:    strings.TrimSpace(values.Get("category")),
		Location:    strings.TrimSpace(values.Get("location")),
	}
}

func (f BusinessForm) Validate() error {
	if err := validate.Struct(f); err != nil {
		return ErrFieldsRequired
	}
	return nil
}

func (f BusinessForm) NewBusiness() client.NewBusiness {
	return client.NewBusiness{
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Location:    f.Location,
	}
}

type ReviewForm struct {
	Rating  int    `validate:"min=1,max=5"`
	Comment string `validate:"min=10"`
}

// ParseReviewForm reads rating and comment. A missing rating means
// DefaultRating; an unparsable one is left at 0 and fails validation.
func ParseReviewForm(values url.Values) ReviewForm {
	form := ReviewForm{Rating: DefaultRating, Comment: strings.TrimSpace(values.Get("comment"))}
	if raw := strings.TrimSpace(values.Get("rating")); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			rating = 0
		}
		form.Rating = rating
	}
	return form
}

func (f ReviewForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 && fieldErrors[0].Field() == "Rating" {
		return ErrRatingRange
	}
	return ErrReviewTooShort
}

func (f ReviewForm) NewReview(businessID string) client.NewReview {
	return client.NewReview{BusinessID: businessID, Rating: f.Rating, Comment: f.Comment}
}
