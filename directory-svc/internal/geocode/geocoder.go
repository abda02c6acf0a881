// Package geocode turns free-form addresses into points using an external
// provider. Provider failures wrap domain.ErrUnavailable; an unknown address is
// an empty result, not an error.
package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"business-directory/directory-svc/internal/domain"
)

type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]domain.GeoPoint, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	ProviderNominatim = "nominatim"
	ProviderGoogle    = "google"

	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	DefaultGoogleURL    = "https://maps.googleapis.com/maps/api/geocode/json"
)

func unavailable(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrUnavailable, fmt.Sprintf(format, args...))
}

func get(ctx context.Context, client HTTPClient, endpoint string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, unavailable("geocoder request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, unavailable("read geocoder response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, unavailable("geocoder returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

type Config struct {
	Provider          string
	URL               string
	APIKey            string
	UserAgent         string
	RequestsPerSecond float64
}

// New builds the provider client named by cfg.Provider.
func New(cfg Config, client HTTPClient) (Geocoder, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderNominatim:
		return NewNominatimClient(cfg.URL, cfg.UserAgent, client, cfg.RequestsPerSecond), nil
	case ProviderGoogle:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("geocoder %q requires an API key", ProviderGoogle)
		}
		return NewGoogleClient(cfg.URL, cfg.APIKey, client), nil
	default:
		return nil, fmt.Errorf("unknown geocoder provider %q", cfg.Provider)
	}
}
