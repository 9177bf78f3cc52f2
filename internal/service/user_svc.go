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

// UserService covers profile reads, onboarding and platform stats.
type UserService struct {
	users *repository.UserRepo
}

func NewUserService(users *repository.UserRepo) *UserService {
	return &UserService{users: users}
}

// Me returns the caller's own account.
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierr.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// Onboard stores the post-signup profile fields and marks the account
// onboarded.
func (s *UserService) Onboard(ctx context.Context, userID uuid.UUID, in model.OnboardingInput) (*model.User, error) {
	if in.Age != nil && (*in.Age < 1 || *in.Age > 120) {
		return nil, apierr.InvalidArgument("Invalid age")
	}

	user, err := s.users.Onboard(ctx, userID, in)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierr.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// ChannelProfile returns the public channel page for a user.
func (s *UserService) ChannelProfile(ctx context.Context, channelID string) (*model.ChannelProfile, error) {
	cid, err := uuid.Parse(channelID)
	if err != nil {
		return nil, apierr.NotFound("Channel not found")
	}

	profile, err := s.users.ChannelProfile(ctx, cid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apierr.NotFound("Channel not found")
		}
		return nil, err
	}
	return profile, nil
}

// GetStats returns the platform-wide totals.
func (s *UserService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	return s.users.GetStats(ctx)
}
