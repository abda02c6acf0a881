package service

import (
	"context"

	"business-directory/directory-svc/internal/domain"
)

type BusinessServiceInterface interface {
	List(ctx context.Context, filter domain.BusinessFilter) ([]domain.Business, error)
	Get(ctx context.Context, id string) (*domain.Business, error)
	Create(ctx context.Context, input domain.BusinessInput) (*domain.Business, error)
	Update(ctx context.Context, id string, patch domain.BusinessPatch) (*domain.Business, error)
	Delete(ctx context.Context, id string) error
	QRCode(ctx context.Context, id string) ([]byte, error)
}

type ReviewServiceInterface interface {
	Create(ctx context.Context, input domain.ReviewInput) (*domain.Review, error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	ListByBusiness(ctx context.Context, businessID string) (*domain.ReviewSummary, error)
	Update(ctx context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
}

// BusinessRepository persists businesses. Insert fills in ID and CreatedAt.
type BusinessRepository interface {
	ListBusinesses(ctx context.Context, filter domain.BusinessFilter) ([]domain.Business, error)
	GetBusiness(ctx context.Context, id string) (*domain.Business, error)
	InsertBusiness(ctx context.Context, business *domain.Business) error
	UpdateBusiness(ctx context.Context, business *domain.Business) error
	DeleteBusiness(ctx context.Context, id string) error
}

type ReviewRepository interface {
	ListBusinessReviews(ctx context.Context, businessID string) ([]domain.Review, error)
	GetReview(ctx context.Context, id string) (*domain.Review, error)
	InsertReview(ctx context.Context, review *domain.Review) error
	UpdateReview(ctx context.Context, review *domain.Review) error
	DeleteReview(ctx context.Context, id string) error
}

// Geocoder resolves a free-form address. An empty result means the address
// is unknown; errors mean the provider could not be reached.
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]domain.GeoPoint, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type QRGenerator interface {
	Generate(businessID string) ([]byte, error)
}

var (
	_ BusinessServiceInterface = (*BusinessService)(nil)
	_ ReviewServiceInterface   = (*ReviewService)(nil)
)
