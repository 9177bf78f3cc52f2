package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is consumed by the recommendation composer as a count source
// keyed by video id. There is no comment CRUD surface here.
type Comment struct {
	ID              uuid.UUID  `json:"_id"`
	VideoID         uuid.UUID  `json:"video"`
	UserID          uuid.UUID  `json:"user"`
	Content         string     `json:"content"`
	ParentCommentID *uuid.UUID `json:"parentComment,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}
