package services

import (
	"context"
	"time"

	"github.com/waypoint-app/waypoint/internal/models"
)

type ReviewService struct {
	reviewRepo models.ReviewRepo
	placeRepo  models.PlaceRepo
}

func NewReviewService(reviewRepo models.ReviewRepo, placeRepo models.PlaceRepo) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		placeRepo:  placeRepo,
	}
}

// Submit validates and stores a review; the place aggregate is advanced in
// the same transaction as the insert.
func (rs *ReviewService) Submit(ctx context.Context, placeID uint, rating int, comment, submitterID string) (*models.Review, *models.RatingAggregate, error) {
	if rating < 1 || rating > 5 {
		return nil, nil, models.NewValidationError("rating", "must be between 1 and 5")
	}

	if _, err := rs.placeRepo.GetPlace(ctx, placeID); err != nil {
		return nil, nil, err
	}

	review := &models.Review{
		Rating:      rating,
		Comment:     comment,
		VisitDate:   time.Now(),
		PlaceID:     placeID,
		SubmitterID: submitterID,
	}
	agg, err := rs.reviewRepo.SubmitReview(ctx, review)
	if err != nil {
		return nil, nil, err
	}
	return review, agg, nil
}
