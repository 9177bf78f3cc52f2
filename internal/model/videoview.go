package model

import (
	"time"

	"github.com/google/uuid"
)

// VideoView is the per-(user, video) watch state. WatchPercentage is
// always recomputed from WatchedTime and VideoDuration, never set
// independently.
type VideoView struct {
	UserID          uuid.UUID `json:"user"`
	VideoID         uuid.UUID `json:"video"`
	WatchedTime     float64   `json:"watchedTime"`
	VideoDuration   float64   `json:"videoDuration"`
	WatchPercentage float64   `json:"watchPercentage"`
	ViewedAt        time.Time `json:"viewedAt"`
}

// Progress is the per-video resume state returned by the progress map
// endpoint.
type Progress struct {
	WatchedTime     float64 `json:"watchedTime"`
	VideoDuration   float64 `json:"videoDuration"`
	WatchPercentage float64 `json:"watchPercentage"`
}
