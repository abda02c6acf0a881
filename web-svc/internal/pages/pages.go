// Package pages renders the server-side views of the directory.
package pages

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"business-directory/client"
	"business-directory/logging"
	"business-directory/web-svc/internal/geolocation"
	"business-directory/web-svc/internal/views"

	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	msgFetchBusinesses = "Failed to fetch businesses"
	msgFetchDetails    = "Failed to fetch business details"
	msgBusinessMissing = "Business not found"
	msgCreateBusiness  = "Failed to create business"
	msgDeleteBusiness  = "Failed to delete business"
	msgSubmitReview    = "Failed to submit review"
	msgDeleteReview    = "Failed to delete review"
)

// DirectoryClient is the part of the API client the pages use.
type DirectoryClient interface {
	ListBusinesses(ctx context.Context, opts client.ListOptions) ([]client.Business, error)
	GetBusiness(ctx context.Context, id string) (*client.Business, error)
	CreateBusiness(ctx context.Context, in client.NewBusiness) (*client.Business, error)
	DeleteBusiness(ctx context.Context, id string) error
	BusinessReviews(ctx context.Context, businessID string) (*client.ReviewSummary, error)
	CreateReview(ctx context.Context, in client.NewReview) (*client.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

var _ DirectoryClient = (*client.Client)(nil)

type Handler struct {
	directory DirectoryClient
	templates map[string]*template.Template
}

func NewHandler(directory DirectoryClient) *Handler {
	h := &Handler{directory: directory, templates: map[string]*template.Template{}}
	for _, page := range []string{"home", "business", "add_business", "error"} {
		h.templates[page] = template.Must(template.New("layout.html").Funcs(template.FuncMap{
			"radiusLabel":   func(km int) string { return strconv.Itoa(km) + " km" },
			"ratingChoices": func() []int { return []int{1, 2, 3, 4, 5} },
		}).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html"))
	}
	return h
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/business/{id}", h.BusinessDetail).Methods(http.MethodGet)
	r.HandleFunc("/business/{id}/delete", h.DeleteBusiness).Methods(http.MethodPost)
	r.HandleFunc("/business/{id}/reviews", h.CreateReview).Methods(http.MethodPost)
	r.HandleFunc("/business/{id}/reviews/{reviewId}/delete", h.DeleteReview).Methods(http.MethodPost)
	r.HandleFunc("/add-business", h.AddBusinessForm).Methods(http.MethodGet)
	r.HandleFunc("/add-business", h.AddBusiness).Methods(http.MethodPost)
}

type homeData struct {
	Cards            []views.BusinessCard
	Filter           views.FilterState
	Categories       []string
	Locations        []string
	Position         *geolocation.Position
	Radius           int
	RadiusOptions    []int
	LocationError    string
	Error            string
	ClearFiltersURL  string
	ClearLocationURL string
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	data := homeData{
		Filter: views.FilterState{
			SearchTerm: query.Get("search"),
			Category:   query.Get("category"),
			Location:   query.Get("location"),
		},
		Radius:        geolocation.ParseRadius(query.Get("radius")),
		RadiusOptions: geolocation.RadiusOptions,
	}

	position, err := geolocation.FromQuery(query)
	switch {
	case err == nil:
		data.Position = position
	case errors.Is(err, geolocation.ErrInvalidPosition):
		data.LocationError = geolocation.LocationErrorMessage
	}
	if query.Get(geolocation.ErrorParam) != "" {
		data.LocationError = geolocation.LocationErrorMessage
	}
	data.ClearFiltersURL = homeURL(views.FilterState{}, data.Position, data.Radius)
	data.ClearLocationURL = homeURL(data.Filter, nil, data.Radius)

	opts := client.ListOptions{}
	if data.Position != nil {
		opts.Near = &client.Near{Lat: data.Position.Lat, Lng: data.Position.Lng, RadiusKm: float64(data.Radius)}
	}

	businesses, err := h.directory.ListBusinesses(r.Context(), opts)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to fetch businesses")
		data.Error = msgFetchBusinesses
		h.render(w, r, "home", http.StatusBadGateway, data)
		return
	}

	data.Categories = views.Categories(businesses)
	data.Locations = views.Locations(businesses)
	data.Cards = views.NewBusinessCards(views.Apply(businesses, data.Filter), data.Position)
	h.render(w, r, "home", http.StatusOK, data)
}

type businessData struct {
	Business      views.BusinessDetail
	Error         string
	ReviewError   string
	ReviewRating  int
	ReviewComment string
	ShowForm      bool
}

func (h *Handler) BusinessDetail(w http.ResponseWriter, r *http.Request) {
	h.renderBusiness(w, r, mux.Vars(r)["id"], http.StatusOK, businessData{ReviewRating: views.DefaultRating})
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := r.ParseForm(); err != nil {
		h.renderBusiness(w, r, id, http.StatusBadRequest, businessData{ReviewRating: views.DefaultRating, ReviewError: msgSubmitReview, ShowForm: true})
		return
	}

	form := views.ParseReviewForm(r.PostForm)
	data := businessData{ReviewRating: form.Rating, ReviewComment: form.Comment, ShowForm: true}
	if err := form.Validate(); err != nil {
		data.ReviewError = err.Error()
		h.renderBusiness(w, r, id, http.StatusBadRequest, data)
		return
	}

	if _, err := h.directory.CreateReview(r.Context(), form.NewReview(id)); err != nil {
		if client.IsNotFound(err) {
			h.renderNotFound(w, r)
			return
		}
		status, message := apiFailure(err, msgSubmitReview)
		logging.Ctx(r.Context()).Warn().Err(err).Str("business_id", id).Msg("failed to create review")
		data.ReviewError = message
		h.renderBusiness(w, r, id, status, data)
		return
	}
	http.Redirect(w, r, businessURL(id), http.StatusSeeOther)
}

func (h *Handler) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.directory.DeleteBusiness(r.Context(), id); err != nil {
		if client.IsNotFound(err) {
			h.renderNotFound(w, r)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("business_id", id).Msg("failed to delete business")
		h.renderBusiness(w, r, id, http.StatusBadGateway, businessData{ReviewRating: views.DefaultRating, Error: msgDeleteBusiness})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if err := h.directory.DeleteReview(r.Context(), vars["reviewId"]); err != nil && !client.IsNotFound(err) {
		logging.Ctx(r.Context()).Error().Err(err).Str("review_id", vars["reviewId"]).Msg("failed to delete review")
		h.renderBusiness(w, r, id, http.StatusBadGateway, businessData{ReviewRating: views.DefaultRating, Error: msgDeleteReview})
		return
	}
	http.Redirect(w, r, businessURL(id), http.StatusSeeOther)
}

type addBusinessData struct {
	Form  views.BusinessForm
	Error string
}

func (h *Handler) AddBusinessForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "add_business", http.StatusOK, addBusinessData{})
}

func (h *Handler) AddBusiness(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, "add_business", http.StatusBadRequest, addBusinessData{Error: msgCreateBusiness})
		return
	}

	form := views.ParseBusinessForm(r.PostForm)
	if err := form.Validate(); err != nil {
		h.render(w, r, "add_business", http.StatusBadRequest, addBusinessData{Form: form, Error: err.Error()})
		return
	}

	business, err := h.directory.CreateBusiness(r.Context(), form.NewBusiness())
	if err != nil {
		status, message := apiFailure(err, msgCreateBusiness)
		logging.Ctx(r.Context()).Warn().Err(err).Msg("failed to create business")
		h.render(w, r, "add_business", status, addBusinessData{Form: form, Error: message})
		return
	}
	http.Redirect(w, r, businessURL(business.ID), http.StatusSeeOther)
}

// renderBusiness fetches the business and its reviews concurrently and
// renders the detail page with data's form state.
func (h *Handler) renderBusiness(w http.ResponseWriter, r *http.Request, id string, status int, data businessData) {
	ctx := r.Context()

	var (
		wg         sync.WaitGroup
		business   *client.Business
		summary    *client.ReviewSummary
		businessErr error
		reviewsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		business, businessErr = h.directory.GetBusiness(ctx, id)
	}()
	go func() {
		defer wg.Done()
		summary, reviewsErr = h.directory.BusinessReviews(ctx, id)
	}()
	wg.Wait()

	if client.IsNotFound(businessErr) {
		h.renderNotFound(w, r)
		return
	}
	if err := errors.Join(businessErr, reviewsErr); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("business_id", id).Msg("failed to fetch business details")
		h.render(w, r, "error", http.StatusBadGateway, map[string]string{"Message": msgFetchDetails})
		return
	}

	data.Business = views.NewBusinessDetail(*business, *summary)
	h.render(w, r, "business", status, data)
}

func (h *Handler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "error", http.StatusNotFound, map[string]string{"Message": msgBusinessMissing})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, status int, data interface{}) {
	var buf bytes.Buffer
	if err := h.templates[page].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("page", page).Msg("failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// apiFailure shows validation messages from the API as-is and hides
// everything else behind fallback.
func apiFailure(err error, fallback string) (int, string) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
		return http.StatusBadRequest, apiErr.Message
	}
	return http.StatusBadGateway, fallback
}

func businessURL(id string) string {
	return "/business/" + url.PathEscape(id)
}

func homeURL(filter views.FilterState, position *geolocation.Position, radius int) string {
	query := url.Values{}
	if filter.SearchTerm != "" {
		query.Set("search", filter.SearchTerm)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Location != "" {
		query.Set("location", filter.Location)
	}
	if position != nil {
		query.Set("lat", strconv.FormatFloat(position.Lat, 'f', -1, 64))
		query.Set("lng", strconv.FormatFloat(position.Lng, 'f', -1, 64))
		query.Set("radius", strconv.Itoa(radius))
	}
	if len(query) == 0 {
		return "/"
	}
	return "/?" + query.Encode()
}
