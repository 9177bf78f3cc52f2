package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Harshil0408/contentify-backend/internal/apierr"
	"github.com/Harshil0408/contentify-backend/internal/model"
)

// viewStore is the watch-state persistence consumed by WatchService.
type viewStore interface {
	Get(ctx context.Context, userID, videoID uuid.UUID) (*model.VideoView, error)
	UpdateProgress(ctx context.Context, userID, videoID uuid.UUID, watchedTime, percentage float64) error
	ListAll(ctx context.Context, userID uuid.UUID) ([]model.VideoView, error)
	NotifyWatchEvent(ctx context.Context, videoID uuid.UUID) error
}

// historyStore is the watch-history slice of the user repository.
type historyStore interface {
	TouchWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error
	GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]model.VideoCard, error)
}

// WatchService tracks per-(user, video) progress and keeps the watch
// history ordered most-recent-first.
type WatchService struct {
	views viewStore
	users historyStore
}

func NewWatchService(views viewStore, users historyStore) *WatchService {
	return &WatchService{views: views, users: users}
}

// ComputePercentage derives the watch percentage from elapsed and total
// seconds, clamped to [0, 100]. A missing duration counts as 1 second
// so the division stays defined.
func ComputePercentage(watchedTime, videoDuration float64) float64 {
	if videoDuration <= 0 {
		videoDuration = 1
	}
	pct := (watchedTime / videoDuration) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// RecordProgress updates the watch state for an existing view record.
// The record must already exist (created when the video detail was
// fetched); the percentage is always recomputed, and the video moves to
// the front of the watch history.
func (s *WatchService) RecordProgress(ctx context.Context, userID uuid.UUID, videoID string, watchedTime float64) (*model.VideoView, error) {
	vid, err := uuid.Parse(videoID)
	if err != nil {
		return nil, apierr.NotFound("Video view not found")
	}

	view, err := s.views.Get(ctx, userID, vid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierr.NotFound("Video view not found")
		}
		return nil, err
	}

	percentage := ComputePercentage(watchedTime, view.VideoDuration)
	if err := s.views.UpdateProgress(ctx, userID, vid, watchedTime, percentage); err != nil {
		return nil, err
	}
	view.WatchedTime = watchedTime
	view.WatchPercentage = percentage

	if err := s.users.TouchWatchHistory(ctx, userID, vid); err != nil {
		return nil, err
	}

	// Wakes the view worker; aggregation is best-effort.
	if err := s.views.NotifyWatchEvent(ctx, vid); err != nil {
		log.Printf("watch: notify error for %s: %v", vid, err)
	}

	return view, nil
}

// GetProgress returns the watch state for one video.
func (s *WatchService) GetProgress(ctx context.Context, userID uuid.UUID, videoID string) (*model.VideoView, error) {
	vid, err := uuid.Parse(videoID)
	if err != nil {
		return nil, apierr.NotFound("Video view not found")
	}

	view, err := s.views.Get(ctx, userID, vid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierr.NotFound("Video view not found")
		}
		return nil, err
	}
	return view, nil
}

// GetAllProgress returns the user's resume states keyed by video id,
// so clients can paint a whole grid from one call.
func (s *WatchService) GetAllProgress(ctx context.Context, userID uuid.UUID) (map[string]model.Progress, error) {
	views, err := s.views.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := make(map[string]model.Progress, len(views))
	for _, v := range views {
		progress[v.VideoID.String()] = model.Progress{
			WatchedTime:     v.WatchedTime,
			VideoDuration:   v.VideoDuration,
			WatchPercentage: v.WatchPercentage,
		}
	}
	return progress, nil
}

// GetWatchHistory returns the populated history, most recent first.
func (s *WatchService) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]model.VideoCard, error) {
	return s.users.GetWatchHistory(ctx, userID)
}
