package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/waypoint-app/waypoint/internal/config"
	"github.com/waypoint-app/waypoint/internal/connect"
	"github.com/waypoint-app/waypoint/internal/helpers"
	"github.com/waypoint-app/waypoint/internal/models"
	"github.com/waypoint-app/waypoint/internal/services"
)

// seed loads a curated place list, optionally refines coordinates through the
// geocoding API, issues a QR code per place and attaches photos found in the
// photo folder by place name.
func main() {
	photoDir := flag.String("photos", "", "folder with seed photos named after places")
	geocode := flag.Bool("geocode", false, "refine coordinates via the geocoding API")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_ = godotenv.Load(".env.local")
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := connect.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer connect.Close(db)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Error("Failed to create upload directory", "error", err)
		os.Exit(1)
	}

	repo := models.GormNewRepo(db)
	qrService, err := services.NewQRService(cfg.BaseURL, cfg.QRLevel, cfg.QRSize)
	if err != nil {
		logger.Error("Failed to build QR issuer", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	places := seedPlaces()

	for i := range places {
		place := &places[i]
		if err := repo.CreatePlace(ctx, place); err != nil {
			logger.Error("Failed to create place", "name", place.Name, "error", err)
			continue
		}

		qrFile := fmt.Sprintf("qr_%d.png", place.ID)
		if err := qrService.WritePlaceFile(place.ID, filepath.Join(cfg.UploadDir, qrFile)); err != nil {
			logger.Warn("Failed to write QR code", "name", place.Name, "error", err)
		} else if err := repo.SetQRCodeFile(ctx, place.ID, qrFile); err != nil {
			logger.Warn("Failed to record QR code file", "name", place.Name, "error", err)
		}

		if *photoDir != "" {
			attachSeedPhoto(ctx, repo, cfg, logger, place, *photoDir)
		}

		logger.Info("Seeded place", "name", place.Name, "id", place.ID)
	}

	if *geocode {
		if cfg.MapsAPIKey == "" {
			logger.Warn("MAPS_API_KEY not set, skipping geocoding")
			return
		}
		gc, err := services.NewGeocodeService(cfg.MapsAPIKey, logger)
		if err != nil {
			logger.Error("Failed to build geocoder", "error", err)
			os.Exit(1)
		}
		updated, err := gc.RefineStored(ctx, repo)
		if err != nil {
			logger.Error("Failed to refine coordinates", "error", err)
			os.Exit(1)
		}
		logger.Info("Refined stored coordinates", "updated", updated)
	}
}

// attachSeedPhoto looks for "<place name>.jpg" or ".jpeg" in photoDir and
// stores the first match as a letterboxed upload owned by the seeder.
func attachSeedPhoto(ctx context.Context, repo *models.GormRepo, cfg *config.Config, logger *slog.Logger, place *models.Place, photoDir string) {
	for _, ext := range []string{".jpg", ".jpeg"} {
		path := filepath.Join(photoDir, place.Name+ext)
		f, err := os.Open(path)
		if err != nil {
			continue
		}

		filename, err := helpers.ProcessAndSaveImage(f, cfg.UploadDir, cfg.PhotoWidth, cfg.PhotoHeight, cfg.JPEGQuality)
		f.Close()
		if err != nil {
			logger.Warn("Failed to process seed photo", "path", path, "error", err)
			return
		}

		expires := time.Now().Add(cfg.DeleteWindow)
		photo := &models.Photo{
			Filename:    filename,
			Caption:     "Photo of " + place.Name,
			PlaceID:     place.ID,
			SubmitterID: "seed",
			ExpiresAt:   &expires,
		}
		if err := repo.AttachPhoto(ctx, photo); err != nil {
			logger.Warn("Failed to attach seed photo", "name", place.Name, "error", err)
			_ = helpers.RemoveImage(cfg.UploadDir, filename)
		}
		return
	}
}

func seedPlaces() []models.Place {
	return []models.Place{
		{
			Name:               "Washington Oaks Gardens State Park",
			Description:        "Beautiful state park featuring historic gardens, coastal landscapes, and unique coquina rock beaches.",
			Latitude:           29.6396,
			Longitude:          -81.2310,
			Category:           models.CategoryNature,
			WeatherSuitability: models.WeatherAllWeather,
		},
		{
			Name:               "Flagler Beach Pier",
			Description:        "Iconic fishing pier offering stunning ocean views and recreational fishing opportunities.",
			Latitude:           29.5133,
			Longitude:          -81.1576,
			Category:           models.CategoryHiking,
			WeatherSuitability: models.WeatherSunny,
		},
		{
			Name:               "Princess Place Preserve",
			Description:        "Historic 1800s lodge with 1,500 acres of natural beauty, hiking trails, and kayaking opportunities.",
			Latitude:           29.5746,
			Longitude:          -81.2254,
			Category:           models.CategoryNature,
			WeatherSuitability: models.WeatherAllWeather,
		},
		{
			Name:               "Palm Coast Linear Park",
			Description:        "Scenic 2-mile walking and biking trail connecting various parks and natural areas.",
			Latitude:           29.5833,
			Longitude:          -81.2416,
			Category:           models.CategoryHiking,
			WeatherSuitability: models.WeatherAllWeather,
		},
		{
			Name:               "Graham Swamp Preserve",
			Description:        "Wildlife preserve offering hiking trails and opportunities for nature photography and bird watching.",
			Latitude:           29.5944,
			Longitude:          -81.2167,
			Category:           models.CategoryNature,
			WeatherSuitability: models.WeatherAllWeather,
		},
		{
			Name:               "European Village",
			Description:        "Unique dining and entertainment complex with multiple restaurants and cuisines.",
			Latitude:           29.5828,
			Longitude:          -81.2461,
			Category:           models.CategoryFood,
			WeatherSuitability: models.WeatherAllWeather,
		},
		{
			Name:               "Hammock Beach Resort Dining",
			Description:        "Multiple upscale dining options with ocean views, including Ocean Course Grille and Atlantic Grille.",
			Latitude:           29.5419,
			Longitude:          -81.1987,
			Category:           models.CategoryFood,
			WeatherSuitability: models.WeatherAllWeather,
		},
	}
}
