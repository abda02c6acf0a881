package tests

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"business-directory/web-svc/internal/gateway"
	"business-directory/web-svc/internal/mocks"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func jsonResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "web-svc", body["service"])
}

func TestGateway_RouteHandler_Businesses(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{DirectorySvcURL: "http://directory-svc/"}, mockClient)

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodGet &&
			req.URL.String() == "http://directory-svc/api/businesses?search=cafe" &&
			req.Header.Get("X-Request-ID") == "req-1"
	})).Return(jsonResponse(http.StatusOK, `[{"id":"b1","name":"Corner Cafe"}]`), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/businesses?search=cafe", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "Corner Cafe")
}

func TestGateway_RouteHandler_ReviewsRoute(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{DirectorySvcURL: "http://directory-svc"}, mockClient)

	var forwarded string
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPost && req.URL.Path == "/api/reviews"
	})).Run(func(args mock.Arguments) {
		body, _ := io.ReadAll(args.Get(0).(*http.Request).Body)
		forwarded = string(body)
	}).Return(jsonResponse(http.StatusCreated, `{"id":"r1"}`), nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"businessId":"b1"}`))
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, `{"businessId":"b1"}`, forwarded)
}

func TestGateway_RouteHandler_PassesThroughErrors(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{DirectorySvcURL: "http://directory-svc"}, mockClient)

	mockClient.On("Do", mock.Anything).
		Return(jsonResponse(http.StatusNotFound, `{"message":"Business not found"}`), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/businesses/missing", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"Business not found"}`, rr.Body.String())
}

func TestGateway_RouteHandler_UnknownAPI(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{DirectorySvcURL: "http://invalid"}, mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/businesses", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "directory service unavailable")
}
