package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/waypoint-app/waypoint/internal/middleware"
	"github.com/waypoint-app/waypoint/internal/models"
	"github.com/waypoint-app/waypoint/internal/services"
)

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid id"))
		return 0, false
	}
	return uint(id), true
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListPlaces returns one page of the ranked directory, optionally filtered by
// category and weather suitability and ranked against the caller's location.
func ListPlaces(s *services.PlaceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
		if err != nil || limit < 1 {
			limit = defaultPageLimit
		}
		if limit > maxPageLimit {
			limit = maxPageLimit
		}

		filter := services.ListFilter{
			Category: c.Query("category"),
			Weather:  c.Query("weather"),
			Page:     page,
			Limit:    limit,
		}
		if latStr, lngStr := c.Query("lat"), c.Query("lng"); latStr != "" && lngStr != "" {
			lat, errLat := strconv.ParseFloat(latStr, 64)
			lng, errLng := strconv.ParseFloat(lngStr, 64)
			if errLat != nil || errLng != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("lat and lng must be numeric"))
				return
			}
			filter.Latitude = &lat
			filter.Longitude = &lng
		}

		places, total, err := s.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.PaginatedResponse(places, page, limit, total))
	}
}

func GetPlace(s *services.PlaceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		place, err := s.Detail(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(place, ""))
	}
}

// CreatePlace creates a place from a multipart form, attaches any uploaded
// photos (ratingless seeds) and issues the place's QR code.
func CreatePlace(s *services.PlaceService, p *services.PhotoService, q *services.QRService, placeRepo models.PlaceRepo, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, errLat := strconv.ParseFloat(c.PostForm("latitude"), 64)
		lng, errLng := strconv.ParseFloat(c.PostForm("longitude"), 64)
		if errLat != nil || errLng != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("latitude and longitude must be numeric"))
			return
		}

		place, err := s.Create(c.Request.Context(), services.NewPlace{
			Name:               c.PostForm("name"),
			Description:        c.PostForm("description"),
			Latitude:           lat,
			Longitude:          lng,
			Category:           c.PostForm("category"),
			WeatherSuitability: c.PostForm("weather"),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		claims, _ := middleware.Claims(c)
		submitter := ""
		if claims != nil {
			submitter = claims.SubmitterID()
		}

		attached := 0
		if form, err := c.MultipartForm(); err == nil {
			for _, file := range form.File["photos"] {
				if _, err := p.Attach(c.Request.Context(), place.ID, file, "", submitter); err != nil {
					_ = c.Error(err)
					continue
				}
				attached++
			}
		}

		// QR issuing failures do not block creation, but they must be logged
		qrFile := "qr_" + strconv.FormatUint(uint64(place.ID), 10) + ".png"
		if err := q.WritePlaceFile(place.ID, filepath.Join(uploadDir, qrFile)); err != nil {
			_ = c.Error(err)
		} else if err := placeRepo.SetQRCodeFile(c.Request.Context(), place.ID, qrFile); err != nil {
			_ = c.Error(err)
		} else {
			place.QRCodeFile = qrFile
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"place":           place,
			"photos_attached": attached,
		}, "Place created successfully"))
	}
}

// IngestScan creates a place from a pipe-delimited QR scan payload.
func IngestScan(s *services.PlaceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Payload string `json:"payload" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		place, err := s.IngestScan(c.Request.Context(), req.Payload)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(place, "Place created from scan"))
	}
}

// Categories lists the valid form values for the creation form.
func Categories() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"categories": models.Categories(),
			"weathers":   models.WeatherSuitabilities(),
		}, ""))
	}
}
