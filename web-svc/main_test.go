package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"business-directory/logging"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	var seenHeader, seenContext string
	handler := requestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenHeader = r.Header.Get(requestIDHeader)
		seenContext = logging.RequestIDFromContext(r.Context())
	}))

	t.Run("keeps_caller_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestIDHeader, "abc")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "abc", rr.Header().Get(requestIDHeader))
		assert.Equal(t, "abc", seenHeader)
		assert.Equal(t, "abc", seenContext)
	})

	t.Run("mints_id_for_proxy", func(t *testing.T) {
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		minted := rr.Header().Get(requestIDHeader)
		assert.NotEmpty(t, minted)
		assert.Equal(t, minted, seenHeader)
		assert.Equal(t, minted, seenContext)
	})
}
