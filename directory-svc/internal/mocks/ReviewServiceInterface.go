package mocks

import (
	"context"

	"business-directory/directory-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ReviewServiceInterface struct {
	mock.Mock
}

func (_m *ReviewServiceInterface) Create(ctx context.Context, input domain.ReviewInput) (*domain.Review, error) {
	ret := _m.Called(ctx, input)
	var r0 *domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Review)
	}
	return r0, ret.Error(1)
}

func (_m *ReviewServiceInterface) Get(ctx context.Context, id string) (*domain.Review, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Review)
	}
	return r0, ret.Error(1)
}

func (_m *ReviewServiceInterface) ListByBusiness(ctx context.Context, businessID string) (*domain.ReviewSummary, error) {
	ret := _m.Called(ctx, businessID)
	var r0 *domain.ReviewSummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.ReviewSummary)
	}
	return r0, ret.Error(1)
}

func (_m *ReviewServiceInterface) Update(ctx context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error) {
	ret := _m.Called(ctx, id, patch)
	var r0 *domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Review)
	}
	return r0, ret.Error(1)
}

func (_m *ReviewServiceInterface) Delete(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func NewReviewServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReviewServiceInterface {
	m := &ReviewServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
