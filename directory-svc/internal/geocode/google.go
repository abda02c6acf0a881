package geocode

import (
	"context"
	"net/url"

	"business-directory/directory-svc/internal/domain"

	"github.com/goccy/go-json"
)

type GoogleClient struct {
	endpoint string
	apiKey   string
	client   HTTPClient
}

func NewGoogleClient(endpoint, apiKey string, client HTTPClient) *GoogleClient {
	if endpoint == "" {
		endpoint = DefaultGoogleURL
	}
	return &GoogleClient{endpoint: endpoint, apiKey: apiKey, client: client}
}

type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *GoogleClient) Geocode(ctx context.Context, address string) ([]domain.GeoPoint, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	body, err := get(ctx, c.client, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var resp googleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, unavailable("decode geocoder response: %v", err)
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []domain.GeoPoint{}, nil
	default:
		return nil, unavailable("geocoder status %s: %s", resp.Status, resp.ErrorMessage)
	}

	points := make([]domain.GeoPoint, 0, len(resp.Results))
	for _, result := range resp.Results {
		points = append(points, domain.NewPoint(result.Geometry.Location.Lat, result.Geometry.Location.Lng))
	}
	return points, nil
}
