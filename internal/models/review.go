package models

import "time"

// Review is a rating plus free-text comment for a place. Reviews and photos
// both contribute ratings; aggregation folds in only the rating from the
// submission that triggered it.
type Review struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Rating      int       `json:"rating" gorm:"not null" validate:"required,min=1,max=5"`
	Comment     string    `json:"comment,omitempty" gorm:"type:text"`
	VisitDate   time.Time `json:"visit_date" gorm:"not null"`
	PlaceID     uint      `json:"place_id" gorm:"not null;index"`
	SubmitterID string    `json:"submitter_id" gorm:"size:64;not null;index"`
	CreatedAt   time.Time `json:"created_at"`
}
