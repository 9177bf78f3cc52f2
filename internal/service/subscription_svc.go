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

// SubscriptionService flips subscriber-channel edges.
type SubscriptionService struct {
	subs  *repository.SubscriptionRepo
	users *repository.UserRepo
}

func NewSubscriptionService(subs *repository.SubscriptionRepo, users *repository.UserRepo) *SubscriptionService {
	return &SubscriptionService{subs: subs, users: users}
}

// Toggle subscribes the user to the channel or removes an existing
// subscription. Subscribing to yourself is rejected.
func (s *SubscriptionService) Toggle(ctx context.Context, userID uuid.UUID, channelID string) (*model.ToggleResult, error) {
	if channelID == "" {
		return nil, apierr.InvalidArgument("Channel id is required")
	}
	cid, err := uuid.Parse(channelID)
	if err != nil {
		return nil, apierr.InvalidArgument("Invalid channel id")
	}
	if cid == userID {
		return nil, apierr.InvalidArgument("You cannot subscribe to your own channel")
	}

	if _, err := s.users.FindByID(ctx, cid); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierr.NotFound("Channel not found")
		}
		return nil, err
	}

	added, err := s.subs.Toggle(ctx, userID, cid)
	if err != nil {
		return nil, err
	}
	return &model.ToggleResult{Added: added}, nil
}
