package model

import (
	"time"

	"github.com/google/uuid"
)

// Like is an edge between a user and exactly one target. Exactly one of
// VideoID, CommentID and TweetID is set; a partial unique index per
// target kind guarantees at most one edge per (user, target).
type Like struct {
	ID        uuid.UUID  `json:"_id"`
	VideoID   *uuid.UUID `json:"video,omitempty"`
	CommentID *uuid.UUID `json:"comment,omitempty"`
	TweetID   *uuid.UUID `json:"tweet,omitempty"`
	LikedBy   uuid.UUID  `json:"likedBy"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Subscription is an edge between a subscriber and a channel (both
// users), unique per pair.
type Subscription struct {
	ID           uuid.UUID `json:"_id"`
	SubscriberID uuid.UUID `json:"subscriber"`
	ChannelID    uuid.UUID `json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToggleResult reports which way a toggle flipped.
type ToggleResult struct {
	Added bool `json:"added"`
}
