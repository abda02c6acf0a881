package mocks

import (
	"context"

	"business-directory/directory-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type BusinessRepository struct {
	mock.Mock
}

func (_m *BusinessRepository) ListBusinesses(ctx context.Context, filter domain.BusinessFilter) ([]domain.Business, error) {
	ret := _m.Called(ctx, filter)
	var r0 []domain.Business
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Business)
	}
	return r0, ret.Error(1)
}

func (_m *BusinessRepository) GetBusiness(ctx context.Context, id string) (*domain.Business, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Business
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Business)
	}
	return r0, ret.Error(1)
}

func (_m *BusinessRepository) InsertBusiness(ctx context.Context, business *domain.Business) error {
	ret := _m.Called(ctx, business)
	return ret.Error(0)
}

func (_m *BusinessRepository) UpdateBusiness(ctx context.Context, business *domain.Business) error {
	ret := _m.Called(ctx, business)
	return ret.Error(0)
}

func (_m *BusinessRepository) DeleteBusiness(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func NewBusinessRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *BusinessRepository {
	m := &BusinessRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
