package geocode

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"business-directory/directory-svc/internal/domain"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// NominatimClient queries an OpenStreetMap Nominatim search endpoint. The
// public instance allows one request per second and requires a User-Agent.
type NominatimClient struct {
	baseURL   string
	userAgent string
	client    HTTPClient
	limiter   *rate.Limiter
}

func NewNominatimClient(baseURL, userAgent string, client HTTPClient, requestsPerSecond float64) *NominatimClient {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Every(time.Duration(float64(time.Second) / requestsPerSecond))
	}
	return &NominatimClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    client,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *NominatimClient) Geocode(ctx context.Context, address string) ([]domain.GeoPoint, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, unavailable("geocoder throttled: %v", err)
	}

	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")

	body, err := get(ctx, c.client, c.baseURL+"/search?"+params.Encode(), map[string]string{
		"User-Agent": c.userAgent,
	})
	if err != nil {
		return nil, err
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, unavailable("decode geocoder response: %v", err)
	}

	points := make([]domain.GeoPoint, 0, len(places))
	for _, place := range places {
		lat, latErr := strconv.ParseFloat(place.Lat, 64)
		lng, lngErr := strconv.ParseFloat(place.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		points = append(points, domain.NewPoint(lat, lng))
	}
	return points, nil
}
