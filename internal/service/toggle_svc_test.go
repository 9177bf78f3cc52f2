package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Harshil0408/contentify-backend/internal/apierr"
)

// Validation happens before any repository access, so these run with
// nil repos.

func TestToggleVideoLike_InvalidIDs(t *testing.T) {
	svc := NewLikeService(nil, nil)
	userID := uuid.New()

	_, err := svc.ToggleVideoLike(context.Background(), userID, "")
	assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))

	_, err = svc.ToggleVideoLike(context.Background(), userID, "not-a-uuid")
	assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))
}

func TestToggleSubscription_InvalidIDs(t *testing.T) {
	svc := NewSubscriptionService(nil, nil)
	userID := uuid.New()

	_, err := svc.Toggle(context.Background(), userID, "")
	assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))

	_, err = svc.Toggle(context.Background(), userID, "still-not-a-uuid")
	assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))
}

func TestToggleSubscription_SelfSubscribe(t *testing.T) {
	svc := NewSubscriptionService(nil, nil)
	userID := uuid.New()

	_, err := svc.Toggle(context.Background(), userID, userID.String())
	assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))
}
