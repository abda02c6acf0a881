// Package client is a typed HTTP client for the directory REST API.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const DefaultTimeout = 10 * time.Second

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL string
	http    HTTPClient
}

// New returns a client for baseURL. A nil httpClient gets a default with a
// 10s timeout.
func New(baseURL string, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) ListBusinesses(ctx context.Context, opts ListOptions) ([]Business, error) {
	query := url.Values{}
	if opts.Near != nil {
		query.Set("lat", formatFloat(opts.Near.Lat))
		query.Set("lng", formatFloat(opts.Near.Lng))
		query.Set("radius", formatFloat(opts.Near.RadiusKm))
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}

	businesses := []Business{}
	if err := c.do(ctx, http.MethodGet, "/api/businesses", query, nil, &businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}

func (c *Client) GetBusiness(ctx context.Context, id string) (*Business, error) {
	var business Business
	if err := c.do(ctx, http.MethodGet, "/api/businesses/"+url.PathEscape(id), nil, nil, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

func (c *Client) CreateBusiness(ctx context.Context, in NewBusiness) (*Business, error) {
	var business Business
	if err := c.do(ctx, http.MethodPost, "/api/businesses", nil, in, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

func (c *Client) UpdateBusiness(ctx context.Context, id string, patch BusinessPatch) (*Business, error) {
	var business Business
	if err := c.do(ctx, http.MethodPut, "/api/businesses/"+url.PathEscape(id), nil, patch, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

func (c *Client) DeleteBusiness(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/businesses/"+url.PathEscape(id), nil, nil, nil)
}

// BusinessQRCode returns the PNG bytes of the business's QR code.
func (c *Client) BusinessQRCode(ctx context.Context, id string) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/businesses/"+url.PathEscape(id)+"/qrcode", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (c *Client) BusinessReviews(ctx context.Context, businessID string) (*ReviewSummary, error) {
	var summary ReviewSummary
	if err := c.do(ctx, http.MethodGet, "/api/reviews/business/"+url.PathEscape(businessID), nil, nil, &summary); err != nil {
		return nil, err
	}
	if summary.Reviews == nil {
		summary.Reviews = []Review{}
	}
	return &summary, nil
}

func (c *Client) GetReview(ctx context.Context, id string) (*Review, error) {
	var review Review
	if err := c.do(ctx, http.MethodGet, "/api/reviews/"+url.PathEscape(id), nil, nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) CreateReview(ctx context.Context, in NewReview) (*Review, error) {
	var review Review
	if err := c.do(ctx, http.MethodPost, "/api/reviews", nil, in, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) UpdateReview(ctx context.Context, id string, patch ReviewPatch) (*Review, error) {
	var review Review
	if err := c.do(ctx, http.MethodPut, "/api/reviews/"+url.PathEscape(id), nil, patch, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/reviews/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send performs the request and converts non-2xx responses into *APIError.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var payload struct {
		Message string `json:"message"`
	}
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
		if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		}
	}
	return nil, apiErr
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
