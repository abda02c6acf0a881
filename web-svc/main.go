package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"business-directory/client"
	"business-directory/config"
	"business-directory/logging"
	"business-directory/web-svc/internal/gateway"
	"business-directory/web-svc/internal/pages"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const requestIDHeader = "X-Request-ID"

func main() {
	settings, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:     settings.Logging.Level,
		Format:    settings.Logging.Format,
		Component: "web-svc",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: settings.Web.RequestTimeout}
	gw := gateway.NewGateway(gateway.Config{DirectorySvcURL: settings.Web.DirectorySvcURL}, httpClient)
	pageHandler := pages.NewHandler(client.New(settings.Web.DirectorySvcURL, httpClient))

	r := mux.NewRouter()
	r.Use(requestID)
	gw.RegisterRoutes(r)
	pageHandler.RegisterRoutes(r)

	origins := settings.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	handler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
	}).Handler(r)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(settings.Web.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logging.Info().Str("addr", srv.Addr).Str("directory_svc", settings.Web.DirectorySvcURL).Msg("web-svc starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}

// requestID tags the request context and forwards the id to directory-svc
// through the proxied headers.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = logging.GenerateRequestID()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithRequestID(r.Context(), id)))
	})
}
