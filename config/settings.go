package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const ConfigPathEnvVar = "CONFIG_PATH"

type Settings struct {
	Server   ServerSettings   `koanf:"server"`
	Storage  StorageSettings  `koanf:"storage"`
	Geocoder GeocoderSettings `koanf:"geocoder"`
	Cache    CacheSettings    `koanf:"cache"`
	Events   EventSettings    `koanf:"events"`
	Logging  LogSettings      `koanf:"logging"`
	Web      WebSettings      `koanf:"web"`
}

type ServerSettings struct {
	Port        int      `koanf:"port" validate:"min=1,max=65535"`
	PublicURL   string   `koanf:"public_url" validate:"required,url"`
	CORSOrigins []string `koanf:"cors_origins"`
}

type StorageSettings struct {
	Driver        string        `koanf:"driver" validate:"oneof=mongo postgres"`
	MongoURI      string        `koanf:"mongo_uri"`
	MongoDatabase string        `koanf:"mongo_database"`
	PostgresDSN   string        `koanf:"postgres_dsn"`
	Timeout       time.Duration `koanf:"timeout" validate:"gt=0"`
}

type GeocoderSettings struct {
	Provider          string        `koanf:"provider" validate:"oneof=nominatim google"`
	URL               string        `koanf:"url"`
	APIKey            string        `koanf:"api_key"`
	UserAgent         string        `koanf:"user_agent" validate:"required"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gte=0"`
	BreakerFailures   uint32        `koanf:"breaker_failures"`
	BreakerTimeout    time.Duration `koanf:"breaker_timeout"`
}

type CacheSettings struct {
	RedisAddr string        `koanf:"redis_addr"`
	TTL       time.Duration `koanf:"ttl"`
}

type EventSettings struct {
	KafkaBroker string `koanf:"kafka_broker"`
	Topic       string `koanf:"topic"`
}

type LogSettings struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
}

type WebSettings struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	DirectorySvcURL string        `koanf:"directory_svc_url" validate:"required,url"`
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"gt=0"`
}

func defaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Port:      5000,
			PublicURL: "http://localhost:8080",
		},
		Storage: StorageSettings{
			Driver:        "mongo",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "business_directory",
			Timeout:       5 * time.Second,
		},
		Geocoder: GeocoderSettings{
			Provider:          "nominatim",
			UserAgent:         "business-directory/1.0",
			Timeout:           5 * time.Second,
			RequestsPerSecond: 1,
			BreakerFailures:   5,
			BreakerTimeout:    30 * time.Second,
		},
		Cache: CacheSettings{
			TTL: 24 * time.Hour,
		},
		Events: EventSettings{
			Topic: "business-events",
		},
		Logging: LogSettings{
			Level:  "info",
			Format: "json",
		},
		Web: WebSettings{
			Port:            8080,
			DirectorySvcURL: "http://localhost:5000",
			RequestTimeout:  10 * time.Second,
		},
	}
}

var envMappings = map[string]string{
	"port":                      "server.port",
	"public_url":                "server.public_url",
	"cors_origins":              "server.cors_origins",
	"storage_driver":            "storage.driver",
	"mongodb_uri":               "storage.mongo_uri",
	"mongodb_database":          "storage.mongo_database",
	"database_url":              "storage.postgres_dsn",
	"db_timeout":                "storage.timeout",
	"geocoder_provider":         "geocoder.provider",
	"geocoder_url":              "geocoder.url",
	"google_maps_api_key":       "geocoder.api_key",
	"geocoder_user_agent":       "geocoder.user_agent",
	"geocoder_timeout":          "geocoder.timeout",
	"geocoder_rps":              "geocoder.requests_per_second",
	"geocoder_breaker_failures": "geocoder.breaker_failures",
	"geocoder_breaker_timeout":  "geocoder.breaker_timeout",
	"redis_addr":                "cache.redis_addr",
	"geocode_cache_ttl":         "cache.ttl",
	"kafka_broker":              "events.kafka_broker",
	"kafka_topic":               "events.topic",
	"log_level":                 "logging.level",
	"log_format":                "logging.format",
	"web_port":                  "web.port",
	"directory_svc_url":         "web.directory_svc_url",
	"web_request_timeout":       "web.request_timeout",
}

var sliceConfigPaths = []string{"server.cors_origins"}

// Load layers defaults, an optional YAML file and the environment, in that
// order of precedence. A .env file in the working directory is read first.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultSettings(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := splitSliceFields(k); err != nil {
		return nil, err
	}

	settings := &Settings{}
	if err := k.Unmarshal("", settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if s.Storage.Driver == "postgres" && s.Storage.PostgresDSN == "" {
		return errors.New("invalid settings: DATABASE_URL is required for the postgres driver")
	}
	if s.Geocoder.Provider == "google" && s.Geocoder.APIKey == "" {
		return errors.New("invalid settings: GOOGLE_MAPS_API_KEY is required for the google geocoder")
	}
	return nil
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func splitSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		var values []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
		if err := k.Set(path, values); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}
