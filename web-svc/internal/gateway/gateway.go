package gateway

import (
	"io"
	"net/http"
	"strings"

	"business-directory/logging"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	DirectorySvcURL string
}

// Gateway forwards /api/* calls from the browser to directory-svc.
type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	config.DirectorySvcURL = strings.TrimRight(config.DirectorySvcURL, "/")
	return &Gateway{
		config: config,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "web-svc",
	})
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	logger := logging.Ctx(r.Context())
	logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Str("target", targetURL).Msg("proxy")

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create proxy request")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("target", targetURL).Msg("failed to proxy request")
		writeJSON(w, http.StatusBadGateway, map[string]string{"message": "directory service unavailable"})
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.Warn().Err(err).Msg("failed to copy proxy response")
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/api/businesses" || strings.HasPrefix(path, "/api/businesses/") {
		g.ProxyRequest(w, r, g.config.DirectorySvcURL)
		return
	}

	if path == "/api/reviews" || strings.HasPrefix(path, "/api/reviews/") {
		g.ProxyRequest(w, r, g.config.DirectorySvcURL)
		return
	}

	logging.Ctx(r.Context()).Debug().Str("path", path).Msg("unmatched api route")
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "API route not found"})
}

func (g *Gateway) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", g.HealthCheck).Methods(http.MethodGet)
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
