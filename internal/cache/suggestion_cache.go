package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/example/carpool/internal/models"
	"github.com/redis/go-redis/v9"
)

const suggestionKeyPrefix = "geo:suggestions:"

// SuggestionCache keeps geocoding results warm so repeated location
// searches don't hammer the upstream gateway.
type SuggestionCache interface {
	Get(ctx context.Context, query string) ([]models.Place, error)
	Set(ctx context.Context, query string, places []models.Place) error
}

type suggestionCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSuggestionCache(redisClient *redis.Client, ttl time.Duration) SuggestionCache {
	return &suggestionCache{redis: redisClient, ttl: ttl}
}

func cacheKey(query string) string {
	return suggestionKeyPrefix + strings.ToLower(strings.TrimSpace(query))
}

// Get returns nil (no error) on a cache miss.
func (c *suggestionCache) Get(ctx context.Context, query string) ([]models.Place, error) {
	data, err := c.redis.Get(ctx, cacheKey(query)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var places []models.Place
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, err
	}
	return places, nil
}

func (c *suggestionCache) Set(ctx context.Context, query string, places []models.Place) error {
	data, err := json.Marshal(places)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, cacheKey(query), data, c.ttl).Err()
}
