package models

import (
	"context"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var Validate = validator.New()

// PlaceRepo is the read/write surface for places. Rating aggregation never
// happens outside the repo layer; handlers see only SubmitPhoto/SubmitReview.
type PlaceRepo interface {
	CreatePlace(ctx context.Context, place *Place) error
	GetPlace(ctx context.Context, id uint) (*Place, error)
	ListPlaces(ctx context.Context, filter PlaceFilter) ([]Place, error)
	SetQRCodeFile(ctx context.Context, id uint, filename string) error
	UpdateCoordinates(ctx context.Context, id uint, lat, lng float64) error
}

// PhotoRepo persists photos. SubmitPhoto folds the photo's rating into the
// owning place's aggregate in the same transaction as the insert.
type PhotoRepo interface {
	SubmitPhoto(ctx context.Context, photo *Photo) (*RatingAggregate, error)
	AttachPhoto(ctx context.Context, photo *Photo) error
	GetPhoto(ctx context.Context, id uint) (*Photo, error)
	ListPhotosByPlace(ctx context.Context, placeID uint) ([]Photo, error)
	ListPhotosBySubmitter(ctx context.Context, submitterID string) ([]Photo, error)
	DeletePhoto(ctx context.Context, id uint) error
}

type ReviewRepo interface {
	SubmitReview(ctx context.Context, review *Review) (*RatingAggregate, error)
	ListReviewsByPlace(ctx context.Context, placeID uint) ([]Review, error)
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
}

// GormRepo implements all repo interfaces over a single gorm handle.
type GormRepo struct {
	db *gorm.DB
}

func GormNewRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

// DB exposes the underlying handle for migrations and maintenance commands.
func (r *GormRepo) DB() *gorm.DB {
	return r.db
}
