package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/waypoint-app/waypoint/internal/config"
	"github.com/waypoint-app/waypoint/internal/helpers"
	"github.com/waypoint-app/waypoint/internal/models"
)

type PhotoService struct {
	photoRepo models.PhotoRepo
	placeRepo models.PlaceRepo
	cfg       *config.Config
}

func NewPhotoService(photoRepo models.PhotoRepo, placeRepo models.PlaceRepo, cfg *config.Config) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		placeRepo: placeRepo,
		cfg:       cfg,
	}
}

// PhotoUpload carries one multipart photo submission.
type PhotoUpload struct {
	File        *multipart.FileHeader
	Caption     string
	Rating      int
	SubmitterID string
}

// Upload validates, letterboxes and stores the image, then inserts the photo
// row and folds its rating into the place aggregate in one transaction. If
// the transaction fails the stored file is removed again, so a rejected
// submission leaves neither a row nor a file behind.
func (ps *PhotoService) Upload(ctx context.Context, placeID uint, up PhotoUpload) (*models.Photo, *models.RatingAggregate, error) {
	if up.Rating < 1 || up.Rating > 5 {
		return nil, nil, models.NewValidationError("rating", "must be between 1 and 5")
	}
	if up.File == nil {
		return nil, nil, models.NewValidationError("photo", "file is required")
	}
	if !helpers.AllowedImageExt(up.File.Filename) {
		return nil, nil, models.NewValidationError("photo", "file type not allowed (png, jpg, jpeg, gif)")
	}
	if up.File.Size > ps.cfg.MaxUploadBytes {
		return nil, nil, models.NewValidationError("photo", "file exceeds maximum upload size")
	}

	if _, err := ps.placeRepo.GetPlace(ctx, placeID); err != nil {
		return nil, nil, err
	}

	src, err := up.File.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	filename, err := helpers.ProcessAndSaveImage(src, ps.cfg.UploadDir, ps.cfg.PhotoWidth, ps.cfg.PhotoHeight, ps.cfg.JPEGQuality)
	if err != nil {
		return nil, nil, err
	}

	expires := time.Now().Add(ps.cfg.DeleteWindow)
	photo := &models.Photo{
		Filename:    filename,
		Caption:     up.Caption,
		Rating:      up.Rating,
		PlaceID:     placeID,
		SubmitterID: up.SubmitterID,
		ExpiresAt:   &expires,
	}

	agg, err := ps.photoRepo.SubmitPhoto(ctx, photo)
	if err != nil {
		// Roll the stored file back so record and file store stay consistent.
		_ = helpers.RemoveImage(ps.cfg.UploadDir, filename)
		return nil, nil, err
	}
	return photo, agg, nil
}

// Attach stores an image for a place without a rating contribution, as done
// when seeding or creating a place with initial photos.
func (ps *PhotoService) Attach(ctx context.Context, placeID uint, file *multipart.FileHeader, caption, submitterID string) (*models.Photo, error) {
	if !helpers.AllowedImageExt(file.Filename) {
		return nil, models.NewValidationError("photo", "file type not allowed (png, jpg, jpeg, gif)")
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	filename, err := helpers.ProcessAndSaveImage(src, ps.cfg.UploadDir, ps.cfg.PhotoWidth, ps.cfg.PhotoHeight, ps.cfg.JPEGQuality)
	if err != nil {
		return nil, err
	}

	expires := time.Now().Add(ps.cfg.DeleteWindow)
	photo := &models.Photo{
		Filename:    filename,
		Caption:     caption,
		PlaceID:     placeID,
		SubmitterID: submitterID,
		ExpiresAt:   &expires,
	}
	if err := ps.photoRepo.AttachPhoto(ctx, photo); err != nil {
		_ = helpers.RemoveImage(ps.cfg.UploadDir, filename)
		return nil, err
	}
	return photo, nil
}

// Delete applies the access guard, then removes the backing file and the
// database row. File first: if the file cannot be removed the row delete is
// aborted, so the two stores never disagree about a live photo.
func (ps *PhotoService) Delete(ctx context.Context, photoID uint, req Requester) (uint, error) {
	photo, err := ps.photoRepo.GetPhoto(ctx, photoID)
	if err != nil {
		return 0, err
	}

	if err := CanDeletePhoto(photo, req, time.Now()); err != nil {
		return 0, err
	}

	if err := helpers.RemoveImage(ps.cfg.UploadDir, photo.Filename); err != nil {
		return 0, err
	}
	if err := ps.photoRepo.DeletePhoto(ctx, photoID); err != nil {
		return 0, err
	}
	return photo.PlaceID, nil
}

func (ps *PhotoService) ListBySubmitter(ctx context.Context, submitterID string) ([]models.Photo, error) {
	return ps.photoRepo.ListPhotosBySubmitter(ctx, submitterID)
}
