package models

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// single writer: concurrent submissions queue instead of hitting
	// SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Place{}, &Photo{}, &Review{}, &User{}))
	return GormNewRepo(db)
}

func newTestPlace(t *testing.T, repo *GormRepo) *Place {
	t.Helper()
	place := &Place{
		Name:               "Flagler Beach Pier",
		Description:        "Iconic fishing pier.",
		Latitude:           29.5133,
		Longitude:          -81.1576,
		Category:           CategoryNature,
		WeatherSuitability: WeatherSunny,
	}
	require.NoError(t, repo.CreatePlace(context.Background(), place))
	return place
}

func submitPhotoRating(t *testing.T, repo *GormRepo, placeID uint, rating int) *RatingAggregate {
	t.Helper()
	expires := time.Now().Add(5 * time.Minute)
	agg, err := repo.SubmitPhoto(context.Background(), &Photo{
		Filename:    "f.jpg",
		Rating:      rating,
		PlaceID:     placeID,
		SubmitterID: "session:test",
		ExpiresAt:   &expires,
	})
	require.NoError(t, err)
	return agg
}

func TestFirstRatingYieldsThatRating(t *testing.T) {
	repo := newTestRepo(t)
	place := newTestPlace(t, repo)

	agg := submitPhotoRating(t, repo, place.ID, 4)

	assert.Equal(t, int64(1), agg.TotalVisits)
	assert.InDelta(t, 4.0, agg.AverageRating, 1e-9)
}

func TestSequentialRatingsYieldMean(t *testing.T) {
	repo := newTestRepo(t)
	place := newTestPlace(t, repo)

	ratings := []int{5, 3, 4, 2, 1}
	var agg *RatingAggregate
	sum := 0
	for _, r := range ratings {
		agg = submitPhotoRating(t, repo, place.ID, r)
		sum += r
	}

	assert.Equal(t, int64(len(ratings)), agg.TotalVisits)
	assert.InDelta(t, float64(sum)/float64(len(ratings)), agg.AverageRating, 1e-9)
}

func TestReviewFoldsIntoAggregate(t *testing.T) {
	repo := newTestRepo(t)
	place := newTestPlace(t, repo)

	submitPhotoRating(t, repo, place.ID, 5)
	agg, err := repo.SubmitReview(context.Background(), &Review{
		Rating:      1,
		Comment:     "crowded",
		VisitDate:   time.Now(),
		PlaceID:     place.ID,
		SubmitterID: "session:test",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), agg.TotalVisits)
	assert.InDelta(t, 3.0, agg.AverageRating, 1e-9)
}

func TestSubmitPhotoUnknownPlaceLeavesNothing(t *testing.T) {
	repo := newTestRepo(t)

	expires := time.Now().Add(5 * time.Minute)
	_, err := repo.SubmitPhoto(context.Background(), &Photo{
		Filename:    "f.jpg",
		Rating:      5,
		PlaceID:     12345,
		SubmitterID: "session:test",
		ExpiresAt:   &expires,
	})
	require.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, repo.db.Model(&Photo{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConcurrentRatingsNoLostUpdate(t *testing.T) {
	repo := newTestRepo(t)
	place := newTestPlace(t, repo)

	var wg sync.WaitGroup
	for _, r := range []int{5, 1} {
		wg.Add(1)
		go func(rating int) {
			defer wg.Done()
			submitPhotoRating(t, repo, place.ID, rating)
		}(r)
	}
	wg.Wait()

	got, err := repo.GetPlace(context.Background(), place.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalVisits)
	assert.InDelta(t, 3.0, got.AverageRating, 1e-9)
}

func TestDeletePhotoDoesNotRecomputeAggregate(t *testing.T) {
	repo := newTestRepo(t)
	place := newTestPlace(t, repo)

	submitPhotoRating(t, repo, place.ID, 5)
	var photo Photo
	require.NoError(t, repo.db.First(&photo).Error)
	require.NoError(t, repo.DeletePhoto(context.Background(), photo.ID))

	// average is folded forward on insert only; deletion leaves it alone
	got, err := repo.GetPlace(context.Background(), place.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalVisits)
	assert.InDelta(t, 5.0, got.AverageRating, 1e-9)
}

func TestDeletePhotoUnknownID(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.DeletePhoto(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &User{
		Username: "guest", Email: "a@example.com", PasswordHash: "x",
	}))
	err := repo.CreateUser(ctx, &User{
		Username: "guest", Email: "b@example.com", PasswordHash: "x",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestListPlacesFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreatePlace(ctx, &Place{
		Name: "a", Description: "d", Category: CategoryFood, WeatherSuitability: WeatherRainy,
	}))
	require.NoError(t, repo.CreatePlace(ctx, &Place{
		Name: "b", Description: "d", Category: CategoryNature, WeatherSuitability: WeatherSunny,
	}))

	places, err := repo.ListPlaces(ctx, PlaceFilter{Category: CategoryFood})
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "a", places[0].Name)

	places, err = repo.ListPlaces(ctx, PlaceFilter{Weather: WeatherSunny})
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "b", places[0].Name)

	places, err = repo.ListPlaces(ctx, PlaceFilter{})
	require.NoError(t, err)
	assert.Len(t, places, 2)
}
