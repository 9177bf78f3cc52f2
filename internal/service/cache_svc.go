package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Harshil0408/contentify-backend/internal/model"
)

// RecommendationTTL bounds how stale a cached recommendation list can
// get; the heuristics tolerate that much drift.
const RecommendationTTL = 5 * time.Minute

// CacheService provides a Redis layer for recommendation lists and the
// refresh-token denylist.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or
// the connection fails, it returns a CacheService with a nil client
// (cache operations become no-ops and token revocation degrades to
// stored-token comparison only).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetRecommendations returns a cached list or nil on miss.
func (c *CacheService) GetRecommendations(ctx context.Context, viewerID, videoID uuid.UUID) ([]model.VideoCard, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, recommendKey(viewerID, videoID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cards []model.VideoCard
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// SetRecommendations stores a recommendation list.
func (c *CacheService) SetRecommendations(ctx context.Context, viewerID, videoID uuid.UUID, cards []model.VideoCard) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(cards)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, recommendKey(viewerID, videoID), b, RecommendationTTL).Err()
}

// RevokeRefreshToken denylists a refresh token id until it would have
// expired anyway.
func (c *CacheService) RevokeRefreshToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

// IsRefreshTokenRevoked reports whether the token id is denylisted.
func (c *CacheService) IsRefreshTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if c.rdb == nil {
		return false, nil
	}
	err := c.rdb.Get(ctx, revokedKey(tokenID)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func recommendKey(viewerID, videoID uuid.UUID) string {
	return fmt.Sprintf("rec:%s:%s", viewerID, videoID)
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("revoked:%s", tokenID)
}
