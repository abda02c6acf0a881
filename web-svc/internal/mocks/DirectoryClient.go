package mocks

import (
	"context"

	"business-directory/client"

	"github.com/stretchr/testify/mock"
)

type DirectoryClient struct {
	mock.Mock
}

func (_m *DirectoryClient) ListBusinesses(ctx context.Context, opts client.ListOptions) ([]client.Business, error) {
	ret := _m.Called(ctx, opts)
	var r0 []client.Business
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]client.Business)
	}
	return r0, ret.Error(1)
}

func (_m *DirectoryClient) GetBusiness(ctx context.Context, id string) (*client.Business, error) {
	ret := _m.Called(ctx, id)
	var r0 *client.Business
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*client.Business)
	}
	return r0, ret.Error(1)
}

func (_m *DirectoryClient) CreateBusiness(ctx context.Context, in client.NewBusiness) (*client.Business, error) {
	ret := _m.Called(ctx, in)
	var r0 *client.Business
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*client.Business)
	}
	return r0, ret.Error(1)
}

func (_m *DirectoryClient) DeleteBusiness(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *DirectoryClient) BusinessReviews(ctx context.Context, businessID string) (*client.ReviewSummary, error) {
	ret := _m.Called(ctx, businessID)
	var r0 *client.ReviewSummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*client.ReviewSummary)
	}
	return r0, ret.Error(1)
}

func (_m *DirectoryClient) CreateReview(ctx context.Context, in client.NewReview) (*client.Review, error) {
	ret := _m.Called(ctx, in)
	var r0 *client.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*client.Review)
	}
	return r0, ret.Error(1)
}

func (_m *DirectoryClient) DeleteReview(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func NewDirectoryClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *DirectoryClient {
	m := &DirectoryClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
