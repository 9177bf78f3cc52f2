package model

import (
	"time"

	"github.com/google/uuid"
)

// Video represents a published media record. Duration is stored as the
// floored whole-second count, string-encoded (legacy client contract).
type Video struct {
	ID                uuid.UUID   `json:"_id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Category          string      `json:"category"`
	Tags              []string    `json:"tags"`
	VideoFile         string      `json:"videoFile"`
	VideoPublicID     string      `json:"-"`
	Thumbnail         string      `json:"thumbnail"`
	ThumbnailPublicID string      `json:"-"`
	Duration          string      `json:"duration"`
	OwnerID           uuid.UUID   `json:"owner"`
	Views             int         `json:"views"`
	Downloads         int         `json:"downloads"`
	AverageWatchTime  float64     `json:"averageWatchTime"`
	Language          string      `json:"language,omitempty"`
	IsPublished       bool        `json:"isPublished"`
	IsDeleted         bool        `json:"-"`
	IsPrivate         bool        `json:"isPrivate"`
	ReportedBy        []uuid.UUID `json:"-"`
	ReportReason      string      `json:"-"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// VideoDetail is the composed single-video view returned to a viewer:
// the public video fields plus owner projection and the viewer-relative
// engagement state.
type VideoDetail struct {
	Video
	Owner        OwnerProfile `json:"ownerProfile"`
	LikeCount    int          `json:"likeCount"`
	IsLiked      bool         `json:"isLiked"`
	IsSubscribed bool         `json:"isSubscribed"`
}

// VideoCard is the list-item projection used by discovery feeds,
// recommendations and the watch history. Description and LikeCount are
// only filled by the owner's own listing; LikeCount is a pointer so a
// channel with zero likes still serializes the field there.
type VideoCard struct {
	ID          uuid.UUID    `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Thumbnail   string       `json:"thumbnail"`
	VideoFile   string       `json:"videoFile,omitempty"`
	Duration    string       `json:"duration"`
	Views       int          `json:"views"`
	Tags        []string     `json:"tags,omitempty"`
	LikeCount   *int         `json:"likesCount,omitempty"`
	Owner       OwnerProfile `json:"owner"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// LikedVideo is a liked-videos list entry, most recently liked first.
type LikedVideo struct {
	LikeID    uuid.UUID    `json:"_id"`
	LikedAt   time.Time    `json:"likedAt"`
	VideoID   uuid.UUID    `json:"videoId"`
	Title     string       `json:"title"`
	Thumbnail string       `json:"thumbnail"`
	Views     int          `json:"views"`
	Duration  string       `json:"duration"`
	Owner     OwnerProfile `json:"owner"`
}

// VideoPage is a paginated video listing.
type VideoPage struct {
	Videos  []VideoCard `json:"videos"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	Total   int         `json:"total"`
	HasMore bool        `json:"hasMore"`
}

// VideoUpdate carries the allow-listed scalar fields a PATCH may change.
// Nil pointers mean "leave unchanged".
type VideoUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`
	Language    *string  `json:"language"`
	IsPrivate   *bool    `json:"isPrivate"`
}
