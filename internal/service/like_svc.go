package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Harshil0408/contentify-backend/internal/apierr"
	"github.com/Harshil0408/contentify-backend/internal/model"
	"github.com/Harshil0408/contentify-backend/internal/repository"
)

// LikeService flips like edges on videos.
type LikeService struct {
	likes  *repository.LikeRepo
	videos *repository.VideoRepo
}

func NewLikeService(likes *repository.LikeRepo, videos *repository.VideoRepo) *LikeService {
	return &LikeService{likes: likes, videos: videos}
}

// ToggleVideoLike adds the like edge when absent and removes it when
// present. The result reports which way it went.
func (s *LikeService) ToggleVideoLike(ctx context.Context, userID uuid.UUID, videoID string) (*model.ToggleResult, error) {
	if videoID == "" {
		return nil, apierr.InvalidArgument("Video id is required")
	}
	vid, err := uuid.Parse(videoID)
	if err != nil {
		return nil, apierr.InvalidArgument("Invalid video id")
	}

	if _, err := s.videos.FindVisibleByID(ctx, vid); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierr.NotFound("Video not found")
		}
		return nil, err
	}

	added, err := s.likes.ToggleVideoLike(ctx, userID, vid)
	if err != nil {
		return nil, err
	}
	return &model.ToggleResult{Added: added}, nil
}
