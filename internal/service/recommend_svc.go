package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Harshil0408/contentify-backend/internal/apierr"
	"github.com/Harshil0408/contentify-backend/internal/model"
)

const (
	// CompletionThreshold marks a video as watched for recommendation
	// exclusion purposes.
	CompletionThreshold = 90.0

	maxPerHeuristic    = 5
	maxRecommendations = 15
)

// candidateStore provides the current-video lookup plus the four
// independent heuristic queries.
type candidateStore interface {
	FindByID(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	ListSameChannel(ctx context.Context, ownerID uuid.UUID, exclude []uuid.UUID, limit int) ([]model.VideoCard, error)
	ListMostCommented(ctx context.Context, exclude []uuid.UUID, limit int) ([]model.VideoCard, error)
	ListMostLiked(ctx context.Context, exclude []uuid.UUID, limit int) ([]model.VideoCard, error)
	ListTagMatched(ctx context.Context, tags []string, exclude []uuid.UUID, limit int) ([]model.VideoCard, error)
}

// completionStore exposes the viewer's completed video ids.
type completionStore interface {
	ListCompletedIDs(ctx context.Context, userID uuid.UUID, threshold float64) ([]uuid.UUID, error)
}

// RecommendService blends four heuristics into one deduplicated ranked
// list: same-channel, most-commented, most-liked, tag-matched, in that
// priority order. There is no numeric weighting between heuristics.
type RecommendService struct {
	videos candidateStore
	views  completionStore
	cache  *CacheService

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

func NewRecommendService(videos candidateStore, views completionStore, cache *CacheService) *RecommendService {
	return &RecommendService{videos: videos, views: views, cache: cache}
}

// SetCacheMetrics wires the optional cache hit/miss counters. Nil
// counters leave instrumentation off.
func (s *RecommendService) SetCacheMetrics(hits, misses prometheus.Counter) {
	s.cacheHits = hits
	s.cacheMisses = misses
}

// Recommend returns up to 15 candidates to show after the current
// video, excluding the current video and anything the viewer already
// watched past the completion threshold.
func (s *RecommendService) Recommend(ctx context.Context, viewerID uuid.UUID, currentVideoID string) ([]model.VideoCard, error) {
	currentID, err := uuid.Parse(currentVideoID)
	if err != nil {
		return nil, apierr.NotFound("Current video not found")
	}

	if s.cache != nil {
		if cached, err := s.cache.GetRecommendations(ctx, viewerID, currentID); err != nil {
			log.Printf("recommend: cache read error: %v", err)
		} else if cached != nil {
			if s.cacheHits != nil {
				s.cacheHits.Inc()
			}
			return cached, nil
		}
		if s.cacheMisses != nil {
			s.cacheMisses.Inc()
		}
	}

	current, err := s.videos.FindByID(ctx, currentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierr.NotFound("Current video not found")
		}
		return nil, err
	}

	completed, err := s.views.ListCompletedIDs(ctx, viewerID, CompletionThreshold)
	if err != nil {
		return nil, err
	}
	exclude := append(completed, currentID)

	sameChannel, err := s.videos.ListSameChannel(ctx, current.OwnerID, exclude, maxPerHeuristic)
	if err != nil {
		return nil, err
	}
	mostCommented, err := s.videos.ListMostCommented(ctx, exclude, maxPerHeuristic)
	if err != nil {
		return nil, err
	}
	mostLiked, err := s.videos.ListMostLiked(ctx, exclude, maxPerHeuristic)
	if err != nil {
		return nil, err
	}
	tagMatched, err := s.videos.ListTagMatched(ctx, current.Tags, exclude, maxPerHeuristic)
	if err != nil {
		return nil, err
	}

	recommended := mergeCandidates(currentID, maxRecommendations,
		sameChannel, mostCommented, mostLiked, tagMatched)

	if s.cache != nil {
		if err := s.cache.SetRecommendations(ctx, viewerID, currentID, recommended); err != nil {
			log.Printf("recommend: cache write error: %v", err)
		}
	}

	return recommended, nil
}

// mergeCandidates concatenates the heuristic lists in priority order,
// deduplicates by video id keeping the first occurrence, drops the
// current video and truncates to limit. The merge is
// stable: earlier lists win ties over later ones.
func mergeCandidates(currentID uuid.UUID, limit int, lists ...[]model.VideoCard) []model.VideoCard {
	seen := make(map[uuid.UUID]struct{})
	merged := make([]model.VideoCard, 0, limit)

	for _, list := range lists {
		for _, card := range list {
			if card.ID == currentID {
				continue
			}
			if _, ok := seen[card.ID]; ok {
				continue
			}
			seen[card.ID] = struct{}{}
			merged = append(merged, card)
			if len(merged) == limit {
				return merged
			}
		}
	}
	return merged
}
