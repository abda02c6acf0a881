package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"business-directory/directory-svc/internal/domain"
	"business-directory/directory-svc/internal/service"
	"business-directory/logging"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	Businesses service.BusinessServiceInterface
	Reviews    service.ReviewServiceInterface
}

func NewHandler(businesses service.BusinessServiceInterface, reviews service.ReviewServiceInterface) *Handler {
	return &Handler{
		Businesses: businesses,
		Reviews:    reviews,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/businesses", h.getBusinesses).Methods("GET")
	r.HandleFunc("/api/businesses", h.createBusiness).Methods("POST")
	r.HandleFunc("/api/businesses/{id}", h.getBusiness).Methods("GET")
	r.HandleFunc("/api/businesses/{id}", h.updateBusiness).Methods("PUT")
	r.HandleFunc("/api/businesses/{id}", h.deleteBusiness).Methods("DELETE")
	r.HandleFunc("/api/businesses/{id}/qrcode", h.getBusinessQRCode).Methods("GET")

	r.HandleFunc("/api/reviews", h.createReview).Methods("POST")
	r.HandleFunc("/api/reviews/business/{businessId}", h.getBusinessReviews).Methods("GET")
	r.HandleFunc("/api/reviews/{id}", h.getReview).Methods("GET")
	r.HandleFunc("/api/reviews/{id}", h.updateReview).Methods("PUT")
	r.HandleFunc("/api/reviews/{id}", h.deleteReview).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "directory-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getBusinesses(w http.ResponseWriter, r *http.Request) {
	filter, err := parseBusinessFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	businesses, err := h.Businesses.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, businesses)
}

func (h *Handler) getBusiness(w http.ResponseWriter, r *http.Request) {
	business, err := h.Businesses.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, business)
}

func (h *Handler) createBusiness(w http.ResponseWriter, r *http.Request) {
	var input domain.BusinessInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	business, err := h.Businesses.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, business)
}

func (h *Handler) updateBusiness(w http.ResponseWriter, r *http.Request) {
	var patch domain.BusinessPatch
	if err := decodeBody(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	business, err := h.Businesses.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, business)
}

func (h *Handler) deleteBusiness(w http.ResponseWriter, r *http.Request) {
	if err := h.Businesses.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Business deleted successfully"})
}

func (h *Handler) getBusinessQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Businesses.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var input domain.ReviewInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	review, err := h.Reviews.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *Handler) getBusinessReviews(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Reviews.ListByBusiness(r.Context(), mux.Vars(r)["businessId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) getReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.Reviews.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *Handler) updateReview(w http.ResponseWriter, r *http.Request) {
	var patch domain.ReviewPatch
	if err := decodeBody(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	review, err := h.Reviews.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Review deleted successfully"})
}

// parseBusinessFilter applies the radius filter only when lat, lng and radius
// are all present.
func parseBusinessFilter(r *http.Request) (domain.BusinessFilter, error) {
	q := r.URL.Query()
	filter := domain.BusinessFilter{Search: q.Get("search")}

	latRaw, lngRaw, radiusRaw := q.Get("lat"), q.Get("lng"), q.Get("radius")
	if latRaw == "" || lngRaw == "" || radiusRaw == "" {
		return filter, nil
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return filter, domain.NewValidationError("lat must be a number")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return filter, domain.NewValidationError("lng must be a number")
	}
	radius, err := strconv.ParseFloat(strings.TrimSpace(radiusRaw), 64)
	if err != nil {
		return filter, domain.NewValidationError("radius must be a number")
	}

	filter.Near = &domain.Circle{Lat: lat, Lng: lng, RadiusKm: radius}
	return filter, filter.Near.Validate()
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, messageResponse{Message: message})
}

// StatusFor maps a service error to its HTTP status and public message.
func StatusFor(err error) (int, string) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, notFoundErr.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, "geocoding service unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
