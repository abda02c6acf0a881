package geocode

import (
	"context"

	"business-directory/directory-svc/internal/domain"
	"business-directory/logging"
)

type Cache interface {
	Get(ctx context.Context, address string) ([]domain.GeoPoint, bool, error)
	Set(ctx context.Context, address string, points []domain.GeoPoint) error
}

// Cached serves repeated addresses from cache. Cache errors are logged and
// fall through to the provider; empty answers are never stored.
type Cached struct {
	next  Geocoder
	cache Cache
}

func NewCached(next Geocoder, cache Cache) *Cached {
	return &Cached{next: next, cache: cache}
}

func (c *Cached) Geocode(ctx context.Context, address string) ([]domain.GeoPoint, error) {
	points, ok, err := c.cache.Get(ctx, address)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("geocode cache read failed")
	} else if ok {
		return points, nil
	}

	points, err = c.next.Geocode(ctx, address)
	if err != nil || len(points) == 0 {
		return points, err
	}

	if err := c.cache.Set(ctx, address, points); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("geocode cache write failed")
	}
	return points, nil
}
