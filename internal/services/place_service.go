package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/waypoint-app/waypoint/internal/models"
)

type PlaceService struct {
	placeRepo  models.PlaceRepo
	photoRepo  models.PhotoRepo
	reviewRepo models.ReviewRepo
}

func NewPlaceService(placeRepo models.PlaceRepo, photoRepo models.PhotoRepo, reviewRepo models.ReviewRepo) *PlaceService {
	return &PlaceService{
		placeRepo:  placeRepo,
		photoRepo:  photoRepo,
		reviewRepo: reviewRepo,
	}
}

// NewPlace is the creation form payload.
type NewPlace struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	Category           string  `json:"category"`
	WeatherSuitability string  `json:"weather_suitability"`
}

func (s *PlaceService) Create(ctx context.Context, in NewPlace) (*models.Place, error) {
	category := models.Category(in.Category)
	if !category.Valid() {
		return nil, models.NewValidationError("category", fmt.Sprintf("unknown value %q", in.Category))
	}
	weather := models.WeatherSuitability(in.WeatherSuitability)
	if !weather.Valid() {
		return nil, models.NewValidationError("weather_suitability", fmt.Sprintf("unknown value %q", in.WeatherSuitability))
	}

	place := &models.Place{
		Name:               in.Name,
		Description:        in.Description,
		Latitude:           in.Latitude,
		Longitude:          in.Longitude,
		Category:           category,
		WeatherSuitability: weather,
	}
	if err := models.Validate.Struct(place); err != nil {
		return nil, models.NewValidationError("place", err.Error())
	}
	if err := s.placeRepo.CreatePlace(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// ListFilter narrows, orders and windows the place listing.
type ListFilter struct {
	Category string
	Weather  string
	// Caller location for distance-aware ranking; nil when not supplied.
	Latitude  *float64
	Longitude *float64
	// Page window over the ranked order; Limit <= 0 returns everything.
	Page  int
	Limit int
}

// List returns one page of places ordered by ranking score, plus the number
// of places that matched the filter. Rating and visit counters always
// contribute to the score, nearby places get a bonus when the caller's
// location is known. Ranking runs before the page window, so the first page
// holds the top-scored places.
func (s *PlaceService) List(ctx context.Context, filter ListFilter) ([]models.Place, int, error) {
	repoFilter := models.PlaceFilter{}
	if filter.Category != "" {
		c := models.Category(filter.Category)
		if !c.Valid() {
			return nil, 0, models.NewValidationError("category", fmt.Sprintf("unknown value %q", filter.Category))
		}
		repoFilter.Category = c
	}
	if filter.Weather != "" {
		w := models.WeatherSuitability(filter.Weather)
		if !w.Valid() {
			return nil, 0, models.NewValidationError("weather", fmt.Sprintf("unknown value %q", filter.Weather))
		}
		repoFilter.Weather = w
	}

	places, err := s.placeRepo.ListPlaces(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}

	RankPlaces(places, filter.Latitude, filter.Longitude)

	total := len(places)
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filter.Limit
		if start > total {
			start = total
		}
		end := start + filter.Limit
		if end > total {
			end = total
		}
		places = places[start:end]
	}
	return places, total, nil
}

// Detail returns the place with its photos (newest first) and reviews.
func (s *PlaceService) Detail(ctx context.Context, id uint) (*models.Place, error) {
	place, err := s.placeRepo.GetPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	photos, err := s.photoRepo.ListPhotosByPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListReviewsByPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	place.Photos = photos
	place.Reviews = reviews
	return place, nil
}

// IngestScan creates a place from a scanned QR payload of the form
// "name|lat,lng|description". Scanned entries are landmarks with no category
// information, so they default to Historical / All Weather.
func (s *PlaceService) IngestScan(ctx context.Context, payload string) (*models.Place, error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		return nil, models.NewValidationError("payload", "expected name|gps|description")
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, models.NewValidationError("payload", "name is empty")
	}

	gps := strings.Split(parts[1], ",")
	if len(gps) != 2 {
		return nil, models.NewValidationError("payload", "gps must be lat,lng")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(gps[0]), 64)
	if err != nil {
		return nil, models.NewValidationError("payload", "latitude is not numeric")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(gps[1]), 64)
	if err != nil {
		return nil, models.NewValidationError("payload", "longitude is not numeric")
	}

	return s.Create(ctx, NewPlace{
		Name:               name,
		Description:        strings.TrimSpace(parts[2]),
		Latitude:           lat,
		Longitude:          lng,
		Category:           string(models.CategoryHistorical),
		WeatherSuitability: string(models.WeatherAllWeather),
	})
}

// RankPlaces orders places in-place by descending score. The score weighs the
// running average rating twice as heavily as it weighs visits, and grants up
// to ten bonus points for being close to the caller.
func RankPlaces(places []models.Place, lat, lng *float64) {
	sort.SliceStable(places, func(i, j int) bool {
		return placeScore(&places[i], lat, lng) > placeScore(&places[j], lat, lng)
	})
}

func placeScore(p *models.Place, lat, lng *float64) float64 {
	score := p.AverageRating*2 + float64(p.TotalVisits)*0.5
	if lat != nil && lng != nil {
		dist := haversineKm(*lat, *lng, p.Latitude, p.Longitude)
		score += math.Max(10-dist*0.1, 0)
	}
	return score
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
