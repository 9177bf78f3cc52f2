package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a Contentify account. WatchHistory is ordered
// most-recent-first and never contains the same video twice.
type User struct {
	ID           uuid.UUID   `json:"_id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	Fullname     string      `json:"fullname,omitempty"`
	Avatar       string      `json:"avatar,omitempty"`
	CoverImage   string      `json:"coverImage,omitempty"`
	PasswordHash string      `json:"-"`
	RefreshToken string      `json:"-"`
	GoogleID     *string     `json:"-"`
	IsOnboarded  bool        `json:"isOnboarded"`
	Age          *int        `json:"age,omitempty"`
	City         string      `json:"city,omitempty"`
	Hobby        string      `json:"hobby,omitempty"`
	Language     string      `json:"language,omitempty"`
	PhoneNo      string      `json:"phoneNo,omitempty"`
	WatchHistory []uuid.UUID `json:"watchHistory"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// OwnerProfile is the public projection of a video owner embedded in
// video responses.
type OwnerProfile struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar,omitempty"`
}

// ChannelProfile is the API response for a channel page.
type ChannelProfile struct {
	OwnerProfile
	Fullname        string `json:"fullname,omitempty"`
	CoverImage      string `json:"coverImage,omitempty"`
	SubscriberCount int    `json:"subscriberCount"`
	VideoCount      int    `json:"videoCount"`
}

// OnboardingInput carries the optional profile fields collected after
// signup.
type OnboardingInput struct {
	Age      *int   `json:"age"`
	City     string `json:"city"`
	Hobby    string `json:"hobby"`
	Language string `json:"language"`
	PhoneNo  string `json:"phoneNo"`
}

// StatsResponse is the API response for global platform statistics.
type StatsResponse struct {
	TotalVideos        int   `json:"totalVideos"`
	TotalUsers         int   `json:"totalUsers"`
	TotalLikes         int   `json:"totalLikes"`
	TotalSubscriptions int   `json:"totalSubscriptions"`
	TotalViews         int64 `json:"totalViews"`
}
