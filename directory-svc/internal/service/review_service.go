package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"business-directory/directory-svc/internal/domain"
)

type ReviewService struct {
	repository ReviewRepository
	businesses BusinessRepository
	publisher  EventPublisher
}

func NewReviewService(repository ReviewRepository, businesses BusinessRepository, publisher EventPublisher) *ReviewService {
	return &ReviewService{
		repository: repository,
		businesses: businesses,
		publisher:  publisher,
	}
}

func (s *ReviewService) Create(ctx context.Context, input domain.ReviewInput) (*domain.Review, error) {
	businessID := strings.TrimSpace(input.BusinessID)
	if _, err := s.businesses.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		BusinessID: businessID,
		Rating:     input.Rating,
		Comment:    strings.TrimSpace(input.Comment),
	}
	if err := validateReview(review); err != nil {
		return nil, err
	}

	if err := s.repository.InsertReview(ctx, review); err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	publishEvent(ctx, s.publisher, domain.Event{
		Type:       domain.EventReviewCreated,
		BusinessID: review.BusinessID,
		ReviewID:   review.ID,
		Rating:     review.Rating,
	})
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.repository.GetReview(ctx, id)
}

func (s *ReviewService) ListByBusiness(ctx context.Context, businessID string) (*domain.ReviewSummary, error) {
	reviews, err := s.repository.ListBusinessReviews(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for %s: %w", businessID, err)
	}
	return Summarize(reviews), nil
}

func (s *ReviewService) Update(ctx context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error) {
	existing, err := s.repository.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if patch.Rating != nil {
		updated.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		updated.Comment = strings.TrimSpace(*patch.Comment)
	}
	if err := validateReview(&updated); err != nil {
		return nil, err
	}

	if err := s.repository.UpdateReview(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update review %s: %w", id, err)
	}

	publishEvent(ctx, s.publisher, domain.Event{
		Type:       domain.EventReviewUpdated,
		BusinessID: updated.BusinessID,
		ReviewID:   updated.ID,
		Rating:     updated.Rating,
	})
	return &updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	existing, err := s.repository.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repository.DeleteReview(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, s.publisher, domain.Event{
		Type:       domain.EventReviewDeleted,
		BusinessID: existing.BusinessID,
		ReviewID:   existing.ID,
	})
	return nil
}

// Summarize aggregates reviews that are already ordered newest first.
func Summarize(reviews []domain.Review) *domain.ReviewSummary {
	if reviews == nil {
		reviews = []domain.Review{}
	}

	distribution := map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
		distribution[strconv.Itoa(review.Rating)]++
	}

	average := 0.0
	if len(reviews) > 0 {
		average = float64(sum) / float64(len(reviews))
	}

	return &domain.ReviewSummary{
		Reviews:            reviews,
		TotalReviews:       len(reviews),
		AverageRating:      average,
		RatingDistribution: distribution,
	}
}
