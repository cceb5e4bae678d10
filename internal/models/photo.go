package models

import "time"

// Photo is an uploaded, letterboxed image attached to a place. SubmitterID is
// either a persistent user id or an ephemeral guest session id; ExpiresAt marks
// the end of the submitter's delete window and is set once at creation.
type Photo struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Filename    string     `json:"filename" gorm:"size:255;not null"`
	Caption     string     `json:"caption,omitempty" gorm:"size:255"`
	Rating      int        `json:"rating" gorm:"not null;default:0"`
	PlaceID     uint       `json:"place_id" gorm:"not null;index"`
	SubmitterID string     `json:"submitter_id" gorm:"size:64;not null;index"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"uploaded_at"`
}
