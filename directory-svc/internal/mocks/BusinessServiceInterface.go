package mocks

import (
	"context"

	"business-directory/directory-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type BusinessServiceInterface struct {
	mock.Mock
}

func (_m *BusinessServiceInterface) List(ctx context.Context, filter domain.BusinessFilter) ([]domain.Business, error) {
	ret := _m.Called(ctx, filter)
	var r0 []domain.Business
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Business)
	}
	return r0, ret.Error(1)
}

func (_m *BusinessServiceInterface) Get(ctx context.Context, id string) (*domain.Business, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Business
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Business)
	}
	return r0, ret.Error(1)
}

func (_m *BusinessServiceInterface) Create(ctx context.Context, input domain.BusinessInput) (*domain.Business, error) {
	ret := _m.Called(ctx, input)
	var r0 *domain.Business
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Business)
	}
	return r0, ret.Error(1)
}

func (_m *BusinessServiceInterface) Update(ctx context.Context, id string, patch domain.BusinessPatch) (*domain.Business, error) {
	ret := _m.Called(ctx, id, patch)
	var r0 *domain.Business
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Business)
	}
	return r0, ret.Error(1)
}

func (_m *BusinessServiceInterface) Delete(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *BusinessServiceInterface) QRCode(ctx context.Context, id string) ([]byte, error) {
	ret := _m.Called(ctx, id)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func NewBusinessServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *BusinessServiceInterface {
	m := &BusinessServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
