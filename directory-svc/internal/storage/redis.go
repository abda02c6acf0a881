package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"business-directory/directory-svc/internal/domain"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisGeocodeCache remembers geocoder answers per normalized address.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func (c *RedisGeocodeCache) GeocodeKey(address string) string {
	return "geocode:" + strings.ToLower(strings.Join(strings.Fields(address), " "))
}

func (c *RedisGeocodeCache) Get(ctx context.Context, address string) ([]domain.GeoPoint, bool, error) {
	raw, err := c.Client.Get(ctx, c.GeocodeKey(address)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var points []domain.GeoPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, false, err
	}
	return points, true, nil
}

func (c *RedisGeocodeCache) Set(ctx context.Context, address string, points []domain.GeoPoint) error {
	payload, err := json.Marshal(points)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.GeocodeKey(address), payload, c.TTL).Err()
}
