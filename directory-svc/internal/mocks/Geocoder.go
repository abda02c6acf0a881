package mocks

import (
	"context"

	"business-directory/directory-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type Geocoder struct {
	mock.Mock
}

func (_m *Geocoder) Geocode(ctx context.Context, address string) ([]domain.GeoPoint, error) {
	ret := _m.Called(ctx, address)
	var r0 []domain.GeoPoint
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.GeoPoint)
	}
	return r0, ret.Error(1)
}

func NewGeocoder(t interface {
	mock.TestingT
	Cleanup(func())
}) *Geocoder {
	m := &Geocoder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
