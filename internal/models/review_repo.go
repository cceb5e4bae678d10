package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// SubmitReview inserts the review and folds its rating into the owning
// place's aggregate in one transaction.
func (r *GormRepo) SubmitReview(ctx context.Context, review *Review) (*RatingAggregate, error) {
	var agg *RatingAggregate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := foldRating(tx, review.PlaceID, review.Rating); err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to insert review: %w", err)
		}
		var err error
		agg, err = readAggregate(tx, review.PlaceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *GormRepo) ListReviewsByPlace(ctx context.Context, placeID uint) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Where("place_id = ?", placeID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for place %d: %w", placeID, err)
	}
	return reviews, nil
}
