package main

import (
	"context"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"business-directory/config"
	httpapi "business-directory/directory-svc/internal/api/http"
	"business-directory/directory-svc/internal/geocode"
	"business-directory/directory-svc/internal/service"
	"business-directory/directory-svc/internal/storage"
	"business-directory/logging"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:     settings.Logging.Level,
		Format:    settings.Logging.Format,
		Component: "directory-svc",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	businesses, reviews, closeStore := initStore(ctx, settings)
	defer closeStore()

	geocoder, closeGeocoder := initGeocoder(settings)
	defer closeGeocoder()

	var publisher service.EventPublisher
	if settings.Events.KafkaBroker != "" {
		writer := config.NewKafkaWriter(settings.Events.KafkaBroker, settings.Events.Topic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	businessSvc := service.NewBusinessService(businesses, geocoder, publisher, service.DefaultQRGenerator{BaseURL: settings.Server.PublicURL})
	businessSvc.GeocodeTimeout = settings.Geocoder.Timeout
	reviewSvc := service.NewReviewService(reviews, businesses, publisher)

	handler := httpapi.NewRouter(httpapi.NewHandler(businessSvc, reviewSvc), settings.Server.CORSOrigins)
	if err := httpapi.StartServer(ctx, ":"+strconv.Itoa(settings.Server.Port), handler); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}

func initStore(ctx context.Context, settings *config.Settings) (service.BusinessRepository, service.ReviewRepository, func()) {
	if settings.Storage.Driver == "postgres" {
		db := config.MustInitPostgres(settings.Storage.PostgresDSN)
		repo := storage.NewPostgresRepository(db, settings.Storage.Timeout)
		if err := repo.EnsureSchema(ctx); err != nil {
			logging.Fatal().Err(err).Msg("failed to ensure schema")
		}
		return repo, repo, func() { db.Close() }
	}

	client := config.MustInitMongo(ctx, settings.Storage.MongoURI)
	repo := storage.NewMongoRepository(client.Database(settings.Storage.MongoDatabase), settings.Storage.Timeout)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logging.Fatal().Err(err).Msg("failed to ensure indexes")
	}
	return repo, repo, func() { client.Disconnect(context.Background()) }
}

func initGeocoder(settings *config.Settings) (service.Geocoder, func()) {
	provider, err := geocode.New(geocode.Config{
		Provider:          settings.Geocoder.Provider,
		URL:               settings.Geocoder.URL,
		APIKey:            settings.Geocoder.APIKey,
		UserAgent:         settings.Geocoder.UserAgent,
		RequestsPerSecond: settings.Geocoder.RequestsPerSecond,
	}, &http.Client{Timeout: settings.Geocoder.Timeout})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to configure geocoder")
	}

	var geocoder geocode.Geocoder = geocode.NewBreaker(provider, geocode.BreakerConfig{
		Name:             settings.Geocoder.Provider,
		FailureThreshold: settings.Geocoder.BreakerFailures,
		Timeout:          settings.Geocoder.BreakerTimeout,
	})

	if settings.Cache.RedisAddr == "" {
		return geocoder, func() {}
	}
	rdb := config.MustInitRedis(settings.Cache.RedisAddr)
	geocoder = geocode.NewCached(geocoder, storage.NewRedisGeocodeCache(rdb, settings.Cache.TTL))
	return geocoder, func() { rdb.Close() }
}
