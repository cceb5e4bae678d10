package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/waypoint-app/waypoint/internal/middleware"
	"github.com/waypoint-app/waypoint/internal/models"
	"github.com/waypoint-app/waypoint/internal/services"
)

// UploadPhoto accepts a multipart photo + caption + rating for a place.
func UploadPhoto(p *services.PhotoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		placeID, ok := parseID(c)
		if !ok {
			return
		}

		claims, ok := middleware.Claims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("login required"))
			return
		}

		rating, err := strconv.Atoi(c.PostForm("rating"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("rating must be numeric"))
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("photo file is required"))
			return
		}

		photo, agg, err := p.Upload(c.Request.Context(), placeID, services.PhotoUpload{
			File:        file,
			Caption:     c.PostForm("caption"),
			Rating:      rating,
			SubmitterID: claims.SubmitterID(),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"photo":     photo,
			"aggregate": agg,
		}, "Photo posted successfully"))
	}
}

// DeletePhoto removes a photo if the caller passes the access guard: admins
// always, the submitter only within the delete window.
func DeletePhoto(p *services.PhotoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		photoID, ok := parseID(c)
		if !ok {
			return
		}

		claims, ok := middleware.Claims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("login required"))
			return
		}

		placeID, err := p.Delete(c.Request.Context(), photoID, services.Requester{
			SubmitterID: claims.SubmitterID(),
			Admin:       claims.IsAdmin(),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"place_id": placeID,
		}, "Photo deleted successfully"))
	}
}

// SubmitReview accepts a rating + comment for a place.
func SubmitReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		placeID, ok := parseID(c)
		if !ok {
			return
		}

		claims, ok := middleware.Claims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("login required"))
			return
		}

		var req struct {
			Rating  int    `json:"rating" binding:"required"`
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		review, agg, err := r.Submit(c.Request.Context(), placeID, req.Rating, req.Comment, claims.SubmitterID())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"review":    review,
			"aggregate": agg,
		}, "Review added successfully"))
	}
}
