package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

func (r *GormRepo) CreatePlace(ctx context.Context, place *Place) error {
	if err := r.db.WithContext(ctx).Create(place).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("place %q: %w", place.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to create place: %w", err)
	}
	return nil
}

func (r *GormRepo) GetPlace(ctx context.Context, id uint) (*Place, error) {
	var place Place
	err := r.db.WithContext(ctx).First(&place, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("place %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load place %d: %w", id, err)
	}
	return &place, nil
}

func (r *GormRepo) ListPlaces(ctx context.Context, filter PlaceFilter) ([]Place, error) {
	q := r.db.WithContext(ctx).Model(&Place{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Weather != "" {
		q = q.Where("weather_suitability = ?", filter.Weather)
	}

	var places []Place
	if err := q.Find(&places).Error; err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	return places, nil
}

func (r *GormRepo) SetQRCodeFile(ctx context.Context, id uint, filename string) error {
	res := r.db.WithContext(ctx).Model(&Place{}).Where("id = ?", id).
		Update("qr_code_file", filename)
	if res.Error != nil {
		return fmt.Errorf("failed to set qr code file: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("place %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GormRepo) UpdateCoordinates(ctx context.Context, id uint, lat, lng float64) error {
	res := r.db.WithContext(ctx).Model(&Place{}).Where("id = ?", id).
		Updates(map[string]interface{}{"latitude": lat, "longitude": lng})
	if res.Error != nil {
		return fmt.Errorf("failed to update coordinates: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("place %d: %w", id, ErrNotFound)
	}
	return nil
}

// foldRating advances a place's (average_rating, total_visits) pair by one
// contribution. Both assignments run in a single UPDATE, so every right-hand
// side sees the pre-update row: the denominator is total_visits + 1 and can
// never be zero, and concurrent submissions cannot lose each other's update.
func foldRating(tx *gorm.DB, placeID uint, rating int) error {
	res := tx.Model(&Place{}).Where("id = ?", placeID).Updates(map[string]interface{}{
		"average_rating": gorm.Expr("(average_rating * total_visits + ?) / (total_visits + 1.0)", rating),
		"total_visits":   gorm.Expr("total_visits + 1"),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to fold rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("place %d: %w", placeID, ErrNotFound)
	}
	return nil
}

func readAggregate(tx *gorm.DB, placeID uint) (*RatingAggregate, error) {
	var agg RatingAggregate
	err := tx.Model(&Place{}).
		Select("average_rating", "total_visits").
		Where("id = ?", placeID).
		Take(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read aggregate: %w", err)
	}
	return &agg, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
