package domain

import (
	"encoding/json"
	"time"
)

type ProgressUpdateType string

const (
	ProgressGeneral           ProgressUpdateType = "PROGRESS"
	ProgressPhotoVerification ProgressUpdateType = "PHOTO_VERIFICATION"
	ProgressVideoVerification ProgressUpdateType = "VIDEO_VERIFICATION"
)

// ProgressUpdate is an append-only record of recipient-submitted evidence.
// A ProgressPercent of 100 or more completes the challenge.
type ProgressUpdate struct {
	ID              string             `json:"id" db:"id"`
	ChallengeID     string             `json:"challenge_id" db:"challenge_id"`
	UpdateType      ProgressUpdateType `json:"update_type" db:"update_type"`
	Content         string             `json:"content" db:"content"`
	MediaURLs       []string           `json:"media_urls" db:"media_urls"`
	Metadata        json.RawMessage    `json:"metadata" db:"metadata"`
	ProgressPercent int                `json:"progress_percent" db:"progress_percent"`
	CreatedAt       time.Time          `json:"created_at" db:"created_at"`
}
