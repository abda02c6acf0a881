package geocode

import (
	"context"
	"errors"
	"time"

	"business-directory/directory-svc/internal/domain"
	"business-directory/logging"

	gobreaker "github.com/sony/gobreaker/v2"
)

type BreakerConfig struct {
	Name             string
	FailureThreshold uint32
	Timeout          time.Duration
}

// Breaker stops calling a failing provider for Timeout after FailureThreshold
// consecutive provider failures.
type Breaker struct {
	next Geocoder
	cb   *gobreaker.CircuitBreaker[[]domain.GeoPoint]
}

func NewBreaker(next Geocoder, cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("geocoder circuit state changed")
		},
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker[[]domain.GeoPoint](settings)}
}

func (b *Breaker) Geocode(ctx context.Context, address string) ([]domain.GeoPoint, error) {
	points, err := b.cb.Execute(func() ([]domain.GeoPoint, error) {
		return b.next.Geocode(ctx, address)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, unavailable("geocoder circuit %s", b.cb.State())
	}
	return points, err
}

func (b *Breaker) State() string {
	return b.cb.State().String()
}
