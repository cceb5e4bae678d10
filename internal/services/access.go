package services

import (
	"fmt"
	"time"

	"github.com/waypoint-app/waypoint/internal/models"
)

// Requester is the identity attached to a deletion request, reduced to the
// two facts the guard cares about.
type Requester struct {
	SubmitterID string
	Admin       bool
}

// CanDeletePhoto decides whether req may delete photo at instant now.
// Two independent gates, either grants access:
//  1. an administrator may delete any photo at any time;
//  2. the original submitter may delete their own photo strictly before the
//     photo's expiry.
// The expiry is fixed at creation and never extended, so once the window
// closes the photo is immutable to its submitter.
func CanDeletePhoto(photo *models.Photo, req Requester, now time.Time) error {
	if req.Admin {
		return nil
	}
	if photo.SubmitterID == req.SubmitterID &&
		photo.ExpiresAt != nil && now.Before(*photo.ExpiresAt) {
		return nil
	}
	return fmt.Errorf("delete photo %d: %w", photo.ID, models.ErrNotAuthorized)
}
