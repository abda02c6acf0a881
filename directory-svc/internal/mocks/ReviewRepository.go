package mocks

import (
	"context"

	"business-directory/directory-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ReviewRepository struct {
	mock.Mock
}

func (_m *ReviewRepository) ListBusinessReviews(ctx context.Context, businessID string) ([]domain.Review, error) {
	ret := _m.Called(ctx, businessID)
	var r0 []domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Review)
	}
	return r0, ret.Error(1)
}

func (_m *ReviewRepository) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Review)
	}
	return r0, ret.Error(1)
}

func (_m *ReviewRepository) InsertReview(ctx context.Context, review *domain.Review) error {
	ret := _m.Called(ctx, review)
	return ret.Error(0)
}

func (_m *ReviewRepository) UpdateReview(ctx context.Context, review *domain.Review) error {
	ret := _m.Called(ctx, review)
	return ret.Error(0)
}

func (_m *ReviewRepository) DeleteReview(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func NewReviewRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReviewRepository {
	m := &ReviewRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
