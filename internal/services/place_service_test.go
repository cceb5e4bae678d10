package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waypoint-app/waypoint/internal/connect"
	"github.com/waypoint-app/waypoint/internal/models"
)

func newPlaceService(t *testing.T) (*PlaceService, *models.GormRepo) {
	t.Helper()
	db, err := connect.Open(":memory:")
	require.NoError(t, err)
	repo := models.GormNewRepo(db)
	return NewPlaceService(repo, repo, repo), repo
}

func TestCreateRejectsUnknownEnums(t *testing.T) {
	svc, _ := newPlaceService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, NewPlace{
		Name: "x", Description: "y",
		Category: "Skydiving", WeatherSuitability: string(models.WeatherSunny),
	})
	assert.True(t, models.IsValidation(err))

	_, err = svc.Create(ctx, NewPlace{
		Name: "x", Description: "y",
		Category: string(models.CategoryFood), WeatherSuitability: "Blizzard",
	})
	assert.True(t, models.IsValidation(err))
}

func TestListRanksByRatingAndVisits(t *testing.T) {
	svc, repo := newPlaceService(t)
	ctx := context.Background()

	quiet := &models.Place{
		Name: "quiet", Description: "d",
		Category: models.CategoryNature, WeatherSuitability: models.WeatherSunny,
		AverageRating: 2.0, TotalVisits: 1,
	}
	popular := &models.Place{
		Name: "popular", Description: "d",
		Category: models.CategoryNature, WeatherSuitability: models.WeatherSunny,
		AverageRating: 4.5, TotalVisits: 20,
	}
	require.NoError(t, repo.CreatePlace(ctx, quiet))
	require.NoError(t, repo.CreatePlace(ctx, popular))

	places, total, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, places, 2)
	assert.Equal(t, "popular", places[0].Name)
}

func TestListPaginatesRankedOrder(t *testing.T) {
	svc, repo := newPlaceService(t)
	ctx := context.Background()

	for i, rating := range []float64{1, 5, 3} {
		place := &models.Place{
			Name: []string{"worst", "best", "middle"}[i], Description: "d",
			Category: models.CategoryNature, WeatherSuitability: models.WeatherSunny,
			AverageRating: rating, TotalVisits: 1,
		}
		require.NoError(t, repo.CreatePlace(ctx, place))
	}

	first, total, err := svc.List(ctx, ListFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, first, 2)
	assert.Equal(t, "best", first[0].Name)
	assert.Equal(t, "middle", first[1].Name)

	second, total, err := svc.List(ctx, ListFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, second, 1)
	assert.Equal(t, "worst", second[0].Name)

	// a page past the end is empty, not an error
	beyond, total, err := svc.List(ctx, ListFilter{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, beyond)
}

func TestListDistanceBonusBreaksTie(t *testing.T) {
	svc, repo := newPlaceService(t)
	ctx := context.Background()

	near := &models.Place{
		Name: "near", Description: "d",
		Latitude: 29.58, Longitude: -81.24,
		Category: models.CategoryNature, WeatherSuitability: models.WeatherSunny,
	}
	far := &models.Place{
		Name: "far", Description: "d",
		Latitude: 48.85, Longitude: 2.29,
		Category: models.CategoryNature, WeatherSuitability: models.WeatherSunny,
	}
	require.NoError(t, repo.CreatePlace(ctx, far))
	require.NoError(t, repo.CreatePlace(ctx, near))

	lat, lng := 29.58, -81.24
	places, _, err := svc.List(ctx, ListFilter{Latitude: &lat, Longitude: &lng})
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "near", places[0].Name)
}

func TestListRejectsUnknownFilter(t *testing.T) {
	svc, _ := newPlaceService(t)

	_, _, err := svc.List(context.Background(), ListFilter{Category: "Skydiving"})
	assert.True(t, models.IsValidation(err))
}

func TestIngestScan(t *testing.T) {
	svc, _ := newPlaceService(t)
	ctx := context.Background()

	place, err := svc.IngestScan(ctx, "Statue of Liberty|40.6892,-74.0445|An iconic symbol of freedom.")
	require.NoError(t, err)
	assert.Equal(t, "Statue of Liberty", place.Name)
	assert.InDelta(t, 40.6892, place.Latitude, 1e-9)
	assert.InDelta(t, -74.0445, place.Longitude, 1e-9)
	assert.Equal(t, models.CategoryHistorical, place.Category)
	assert.Equal(t, models.WeatherAllWeather, place.WeatherSuitability)
}

func TestIngestScanMalformedPayloads(t *testing.T) {
	svc, _ := newPlaceService(t)
	ctx := context.Background()

	for _, payload := range []string{
		"",
		"name only",
		"name|gps",
		"name|not-coords|desc",
		"name|12.3|desc",
		"name|abc,def|desc",
		"|40.0,-74.0|desc",
	} {
		_, err := svc.IngestScan(ctx, payload)
		assert.Truef(t, models.IsValidation(err), "payload %q should be rejected, got %v", payload, err)
	}
}

func TestDetailIncludesChildren(t *testing.T) {
	svc, repo := newPlaceService(t)
	ctx := context.Background()

	place, err := svc.Create(ctx, NewPlace{
		Name: "European Village", Description: "dining complex",
		Latitude: 29.5828, Longitude: -81.2461,
		Category: string(models.CategoryFood), WeatherSuitability: string(models.WeatherAllWeather),
	})
	require.NoError(t, err)

	_, err = repo.SubmitReview(ctx, &models.Review{
		Rating: 5, Comment: "great", PlaceID: place.ID, SubmitterID: "session:x",
	})
	require.NoError(t, err)

	got, err := svc.Detail(ctx, place.ID)
	require.NoError(t, err)
	assert.Len(t, got.Reviews, 1)
	assert.Equal(t, int64(1), got.TotalVisits)
}
