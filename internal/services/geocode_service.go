package services

import (
	"context"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"

	"github.com/waypoint-app/waypoint/internal/models"
)

// geocoder is the slice of the Maps client we use; narrowed for tests.
type geocoder interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GeocodeService refines place coordinates through the Google Maps Geocoding
// API. Failures degrade per place: the original coordinates are kept and the
// batch continues.
type GeocodeService struct {
	client geocoder
	logger *slog.Logger
}

func NewGeocodeService(apiKey string, logger *slog.Logger) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client, logger: logger}, nil
}

func newGeocodeServiceWithClient(client geocoder, logger *slog.Logger) *GeocodeService {
	return &GeocodeService{client: client, logger: logger}
}

// RefineStored looks each stored place up by name and persists the first
// geocoding hit's coordinates. Places that fail to geocode keep their stored
// coordinates and never abort the batch. Returns the number of places
// updated.
func (gs *GeocodeService) RefineStored(ctx context.Context, repo models.PlaceRepo) (int, error) {
	places, err := repo.ListPlaces(ctx, models.PlaceFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to list places for refinement: %w", err)
	}

	updated := 0
	for i := range places {
		results, err := gs.client.Geocode(ctx, &maps.GeocodingRequest{Address: places[i].Name})
		if err != nil {
			gs.logger.Warn("geocoding failed, keeping stored coordinates",
				"place", places[i].Name, "error", err)
			continue
		}
		if len(results) == 0 {
			gs.logger.Info("no geocoding results", "place", places[i].Name)
			continue
		}
		loc := results[0].Geometry.Location
		if err := repo.UpdateCoordinates(ctx, places[i].ID, loc.Lat, loc.Lng); err != nil {
			gs.logger.Warn("failed to store refined coordinates",
				"place", places[i].Name, "error", err)
			continue
		}
		gs.logger.Info("refined coordinates",
			"place", places[i].Name,
			"old_lat", places[i].Latitude, "old_lng", places[i].Longitude,
			"new_lat", loc.Lat, "new_lng", loc.Lng)
		updated++
	}
	return updated, nil
}
