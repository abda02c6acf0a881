package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"business-directory/directory-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleClient_Geocode(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedPoints []domain.GeoPoint
		expectedError  error
	}{
		{
			name:           "ok",
			body:           `{"status":"OK","results":[{"formatted_address":"Seattle, WA","geometry":{"location":{"lat":47.6062,"lng":-122.3321}}}]}`,
			expectedPoints: []domain.GeoPoint{domain.NewPoint(47.6062, -122.3321)},
		},
		{
			name:           "zero_results",
			body:           `{"status":"ZERO_RESULTS","results":[]}`,
			expectedPoints: []domain.GeoPoint{},
		},
		{
			name:          "denied",
			body:          `{"status":"REQUEST_DENIED","error_message":"bad key","results":[]}`,
			expectedError: domain.ErrUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Seattle", r.URL.Query().Get("address"))
				assert.Equal(t, "secret", r.URL.Query().Get("key"))
				w.Write([]byte(testCase.body))
			}))
			defer server.Close()

			client := NewGoogleClient(server.URL, "secret", server.Client())
			points, err := client.Geocode(context.Background(), "Seattle")
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectedPoints, points)
		})
	}
}
