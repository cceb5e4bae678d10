package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/waypoint-app/waypoint/internal/config"
	"github.com/waypoint-app/waypoint/internal/helpers"
	"github.com/waypoint-app/waypoint/internal/middleware"
	"github.com/waypoint-app/waypoint/internal/models"
	"github.com/waypoint-app/waypoint/internal/services"
)

const userSessionTTL = 24 * time.Hour

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		user, err := u.Register(c.Request.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(user, "Registration successful! Please log in."))
	}
}

func Login(u *services.UserService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		user, err := u.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid username or password"))
			return
		}

		claims := helpers.NewUserClaims(user.ID, user.Username, user.IsAdmin, userSessionTTL)
		token, err := helpers.SignSession(claims, cfg.SecretKey)
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.SetSessionCookie(c, token, cfg.IsProduction())

		c.JSON(http.StatusOK, models.SuccessResponse(user, "Login successful"))
	}
}

func Logout(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.ClearSessionCookie(c, cfg.IsProduction())
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "You have been logged out"))
	}
}

// Profile returns the caller's stored account and their photos, newest
// first. The account row is re-read so admin revocations and profile edits
// show up without waiting for the session cookie to expire.
func Profile(u *services.UserService, p *services.PhotoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.Claims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("login required"))
			return
		}
		userID, ok := claims.UserID()
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("login required"))
			return
		}

		user, err := u.GetByID(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		photos, err := p.ListBySubmitter(c.Request.Context(), claims.SubmitterID())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"user":   user,
			"photos": photos,
		}, ""))
	}
}
