package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"business-directory/directory-svc/internal/domain"
	"business-directory/logging"
)

const (
	DefaultGeocodeTimeout = 5 * time.Second
	publishTimeout        = 2 * time.Second
)

type BusinessService struct {
	repository BusinessRepository
	geocoder   Geocoder
	publisher  EventPublisher
	qr         QRGenerator

	GeocodeTimeout time.Duration
}

func NewBusinessService(repository BusinessRepository, geocoder Geocoder, publisher EventPublisher, qr QRGenerator) *BusinessService {
	return &BusinessService{
		repository:     repository,
		geocoder:       geocoder,
		publisher:      publisher,
		qr:             qr,
		GeocodeTimeout: DefaultGeocodeTimeout,
	}
}

func (s *BusinessService) List(ctx context.Context, filter domain.BusinessFilter) ([]domain.Business, error) {
	if filter.Near != nil {
		if err := filter.Near.Validate(); err != nil {
			return nil, err
		}
	}
	businesses, err := s.repository.ListBusinesses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	if businesses == nil {
		businesses = []domain.Business{}
	}
	return businesses, nil
}

func (s *BusinessService) Get(ctx context.Context, id string) (*domain.Business, error) {
	return s.repository.GetBusiness(ctx, id)
}

func (s *BusinessService) Create(ctx context.Context, input domain.BusinessInput) (*domain.Business, error) {
	business := &domain.Business{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Location:    strings.TrimSpace(input.Location),
		Coordinates: copyPoint(input.Coordinates),
	}
	if err := validateBusiness(business); err != nil {
		return nil, err
	}

	if business.Coordinates == nil {
		point, err := s.geocode(ctx, business.Location)
		if err != nil {
			return nil, err
		}
		business.Coordinates = point
	}

	if err := s.repository.InsertBusiness(ctx, business); err != nil {
		return nil, fmt.Errorf("insert business: %w", err)
	}

	s.publish(ctx, domain.Event{Type: domain.EventBusinessCreated, BusinessID: business.ID})
	return business, nil
}

func (s *BusinessService) Update(ctx context.Context, id string, patch domain.BusinessPatch) (*domain.Business, error) {
	existing, err := s.repository.GetBusiness(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Coordinates = copyPoint(existing.Coordinates)
	if patch.Name != nil {
		updated.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		updated.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		updated.Category = strings.TrimSpace(*patch.Category)
	}
	locationChanged := false
	if patch.Location != nil {
		location := strings.TrimSpace(*patch.Location)
		locationChanged = location != existing.Location
		updated.Location = location
	}
	if patch.Coordinates != nil {
		updated.Coordinates = copyPoint(patch.Coordinates)
	}

	if err := validateBusiness(&updated); err != nil {
		return nil, err
	}

	if locationChanged && patch.Coordinates == nil {
		point, err := s.geocode(ctx, updated.Location)
		if err != nil {
			return nil, err
		}
		updated.Coordinates = point
	}

	if err := s.repository.UpdateBusiness(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update business %s: %w", id, err)
	}

	s.publish(ctx, domain.Event{Type: domain.EventBusinessUpdated, BusinessID: updated.ID})
	return &updated, nil
}

func (s *BusinessService) Delete(ctx context.Context, id string) error {
	if err := s.repository.DeleteBusiness(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, domain.Event{Type: domain.EventBusinessDeleted, BusinessID: id})
	return nil
}

func (s *BusinessService) QRCode(ctx context.Context, id string) ([]byte, error) {
	business, err := s.repository.GetBusiness(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := s.qr.Generate(business.ID)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	return png, nil
}

func (s *BusinessService) geocode(ctx context.Context, location string) (*domain.GeoPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.GeocodeTimeout)
	defer cancel()

	points, err := s.geocoder.Geocode(ctx, location)
	if err != nil {
		if !errors.Is(err, domain.ErrUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
		}
		return nil, fmt.Errorf("geocode %q: %w", location, err)
	}
	if len(points) == 0 {
		return nil, domain.NewValidationError("unable to geocode location")
	}

	point := points[0]
	point.Normalize()
	if err := point.Validate(); err != nil {
		return nil, domain.NewValidationError("unable to geocode location")
	}
	return &point, nil
}

func (s *BusinessService) publish(ctx context.Context, event domain.Event) {
	publishEvent(ctx, s.publisher, event)
}

func publishEvent(ctx context.Context, publisher EventPublisher, event domain.Event) {
	if publisher == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := publisher.Publish(ctx, event); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("event", event.Type).Str("business_id", event.BusinessID).Msg("publish event failed")
	}
}

func copyPoint(p *domain.GeoPoint) *domain.GeoPoint {
	if p == nil {
		return nil
	}
	cp := domain.GeoPoint{Type: p.Type, Coordinates: append([]float64(nil), p.Coordinates...)}
	return &cp
}
