package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"github.com/waypoint-app/waypoint/internal/connect"
	"github.com/waypoint-app/waypoint/internal/models"
)

type fakeGeocoder struct {
	results map[string][]maps.GeocodingResult
	err     map[string]error
}

func (f *fakeGeocoder) Geocode(_ context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	if err := f.err[r.Address]; err != nil {
		return nil, err
	}
	return f.results[r.Address], nil
}

func TestRefineStoredUpdatesAndDegradesPerPlace(t *testing.T) {
	db, err := connect.Open(":memory:")
	require.NoError(t, err)
	repo := models.GormNewRepo(db)
	ctx := context.Background()

	seed := func(name string, lat, lng float64) *models.Place {
		place := &models.Place{
			Name: name, Description: "d",
			Latitude: lat, Longitude: lng,
			Category: models.CategoryNature, WeatherSuitability: models.WeatherSunny,
		}
		require.NoError(t, repo.CreatePlace(ctx, place))
		return place
	}
	resolves := seed("resolves", 1, 1)
	fails := seed("fails", 2, 2)
	empty := seed("empty", 3, 3)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fake := &fakeGeocoder{
		results: map[string][]maps.GeocodingResult{
			"resolves": {{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 10, Lng: 20}}}},
			"empty":    {},
		},
		err: map[string]error{
			"fails": errors.New("quota exceeded"),
		},
	}
	svc := newGeocodeServiceWithClient(fake, logger)

	updated, err := svc.RefineStored(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	// the resolved place's new coordinates were persisted
	got, err := repo.GetPlace(ctx, resolves.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got.Latitude, 1e-9)
	assert.InDelta(t, 20.0, got.Longitude, 1e-9)

	// failures keep their stored coordinates and do not abort the batch
	got, err = repo.GetPlace(ctx, fails.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got.Latitude, 1e-9)

	got, err = repo.GetPlace(ctx, empty.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got.Latitude, 1e-9)
}
