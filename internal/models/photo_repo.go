package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// SubmitPhoto inserts the photo and folds its rating into the owning place's
// aggregate. The two writes share one transaction: either both are committed
// or neither is.
func (r *GormRepo) SubmitPhoto(ctx context.Context, photo *Photo) (*RatingAggregate, error) {
	var agg *RatingAggregate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := foldRating(tx, photo.PlaceID, photo.Rating); err != nil {
			return err
		}
		if err := tx.Create(photo).Error; err != nil {
			return fmt.Errorf("failed to insert photo: %w", err)
		}
		var err error
		agg, err = readAggregate(tx, photo.PlaceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return agg, nil
}

// AttachPhoto inserts a photo without touching the rating aggregate. Used by
// seeding and by place creation, where uploads carry no rating.
func (r *GormRepo) AttachPhoto(ctx context.Context, photo *Photo) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return fmt.Errorf("failed to attach photo: %w", err)
	}
	return nil
}

func (r *GormRepo) GetPhoto(ctx context.Context, id uint) (*Photo, error) {
	var photo Photo
	err := r.db.WithContext(ctx).First(&photo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("photo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load photo %d: %w", id, err)
	}
	return &photo, nil
}

func (r *GormRepo) ListPhotosByPlace(ctx context.Context, placeID uint) ([]Photo, error) {
	var photos []Photo
	err := r.db.WithContext(ctx).
		Where("place_id = ?", placeID).
		Order("created_at DESC").
		Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photos for place %d: %w", placeID, err)
	}
	return photos, nil
}

func (r *GormRepo) ListPhotosBySubmitter(ctx context.Context, submitterID string) ([]Photo, error) {
	var photos []Photo
	err := r.db.WithContext(ctx).
		Where("submitter_id = ?", submitterID).
		Order("created_at DESC").
		Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photos for submitter: %w", err)
	}
	return photos, nil
}

// DeletePhoto removes the row only. The place aggregate is intentionally left
// untouched; the running average is folded forward on insert and never
// decremented.
func (r *GormRepo) DeletePhoto(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Photo{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete photo %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("photo %d: %w", id, ErrNotFound)
	}
	return nil
}
