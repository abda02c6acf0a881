package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL+"/", server.Client())
}

func TestClient_ListBusinesses(t *testing.T) {
	tests := []struct {
		name          string
		opts          ListOptions
		expectedQuery map[string]string
	}{
		{
			name:          "no_options",
			opts:          ListOptions{},
			expectedQuery: map[string]string{},
		},
		{
			name: "near_and_search",
			opts: ListOptions{Near: &Near{Lat: 45.5, Lng: -122.6, RadiusKm: 5}, Search: "cafe"},
			expectedQuery: map[string]string{
				"lat": "45.5", "lng": "-122.6", "radius": "5", "search": "cafe",
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/businesses", r.URL.Path)
				assert.Len(t, r.URL.Query(), len(testCase.expectedQuery))
				for k, v := range testCase.expectedQuery {
					assert.Equal(t, v, r.URL.Query().Get(k))
				}
				w.Write([]byte(`[{"id":"b1","name":"Corner Cafe","coordinates":{"type":"Point","coordinates":[-122.68,45.52]}}]`))
			})

			businesses, err := c.ListBusinesses(context.Background(), testCase.opts)
			require.NoError(t, err)
			require.Len(t, businesses, 1)
			assert.Equal(t, 45.52, businesses[0].Coordinates.Lat())
			assert.Equal(t, -122.68, businesses[0].Coordinates.Lng())
		})
	}
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		expectedStatus int
		expectedMsg    string
		notFound       bool
		validation     bool
	}{
		{"not_found", http.StatusNotFound, `{"message":"Business not found"}`, 404, "Business not found", true, false},
		{"validation", http.StatusBadRequest, `{"message":"unable to geocode location"}`, 400, "unable to geocode location", false, true},
		{"no_json_body", http.StatusBadGateway, `upstream down`, 502, "Bad Gateway", false, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				w.Write([]byte(testCase.body))
			})

			_, err := c.GetBusiness(context.Background(), "b1")
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, testCase.expectedStatus, apiErr.StatusCode)
			assert.Equal(t, testCase.expectedMsg, apiErr.Message)
			assert.Equal(t, testCase.notFound, IsNotFound(err))
			assert.Equal(t, testCase.validation, IsValidation(err))
		})
	}
}

func TestClient_CreateBusinessAndReview(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)

		switch r.URL.Path {
		case "/api/businesses":
			var in map[string]interface{}
			assert.NoError(t, json.Unmarshal(raw, &in))
			assert.Equal(t, "Corner Cafe", in["name"])
			assert.NotContains(t, in, "coordinates")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"b1","name":"Corner Cafe"}`))
		case "/api/reviews":
			assert.JSONEq(t, `{"businessId":"b1","rating":5,"comment":"Great espresso"}`, string(raw))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"r1","businessId":"b1","rating":5}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	business, err := c.CreateBusiness(context.Background(), NewBusiness{
		Name: "Corner Cafe", Description: "Espresso", Category: "Cafe", Location: "Portland",
	})
	require.NoError(t, err)
	assert.Equal(t, "b1", business.ID)

	review, err := c.CreateReview(context.Background(), NewReview{BusinessID: "b1", Rating: 5, Comment: "Great espresso"})
	require.NoError(t, err)
	assert.Equal(t, "r1", review.ID)
}

func TestClient_BusinessReviews(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reviews/business/b1", r.URL.Path)
		w.Write([]byte(`{"reviews":[{"id":"r1","rating":4},{"id":"r2","rating":5}],"totalReviews":2,"averageRating":4.5,"ratingDistribution":{"4":1,"5":1}}`))
	})

	summary, err := c.BusinessReviews(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalReviews)
	assert.Equal(t, 4.5, summary.AverageRating)
	assert.Len(t, summary.Reviews, 2)
}

func TestClient_DeleteAndQRCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/api/businesses/b1":
			w.Write([]byte(`{"message":"Business deleted successfully"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/reviews/r1":
			w.Write([]byte(`{"message":"Review deleted successfully"}`))
		case r.URL.Path == "/api/businesses/b1/qrcode":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("\x89PNG"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	assert.NoError(t, c.DeleteBusiness(ctx, "b1"))
	assert.NoError(t, c.DeleteReview(ctx, "r1"))
	assert.True(t, IsNotFound(c.DeleteReview(ctx, "r2")))

	png, err := c.BusinessQRCode(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png)
}

func TestClient_UpdateSendsOnlyPatchedFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"location":"Seattle"}`, string(raw))
		w.Write([]byte(`{"id":"b1","location":"Seattle"}`))
	})

	location := "Seattle"
	business, err := c.UpdateBusiness(context.Background(), "b1", BusinessPatch{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Seattle", business.Location)
}
