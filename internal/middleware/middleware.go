package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/waypoint-app/waypoint/internal/config"
	"github.com/waypoint-app/waypoint/internal/helpers"
	"github.com/waypoint-app/waypoint/internal/models"
)

const (
	SessionCookie = "session"
	claimsKey     = "claims"
	sessionTTL    = 24 * time.Hour
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler logs every error handlers pushed onto the gin context. When a
// handler bailed out without writing a response it also answers with a 500;
// errors collected after a response was written are log-only.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		requestID, _ := c.Get("request_id")
		for _, err := range c.Errors {
			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
		}

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("internal server error"))
		}
	}
}

// Session resolves the caller's identity from the signed session cookie. In
// guest mode a missing or invalid cookie mints a fresh ephemeral session, so
// every caller carries a submitter id; in accounts mode the caller simply
// stays anonymous until login.
func Session(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookie); err == nil {
			if claims, err := helpers.ParseSession(token, cfg.SecretKey); err == nil {
				c.Set(claimsKey, claims)
				c.Next()
				return
			}
		}

		if cfg.AuthMode == config.AuthModeGuest {
			claims := helpers.NewGuestClaims(sessionTTL)
			if token, err := helpers.SignSession(claims, cfg.SecretKey); err == nil {
				SetSessionCookie(c, token, cfg.IsProduction())
				c.Set(claimsKey, claims)
			}
		}
		c.Next()
	}
}

// Claims returns the session claims attached by Session, if any.
func Claims(c *gin.Context) (*helpers.SessionClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*helpers.SessionClaims)
	return claims, ok
}

// RequireSubmitter admits any caller with a session identity: logged-in users
// always, guests only in guest mode.
func RequireSubmitter(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("login required"))
			c.Abort()
			return
		}
		if claims.IsGuest() && cfg.AuthMode != config.AuthModeGuest {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("login required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireUser admits only authenticated account sessions.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok || claims.IsGuest() {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("login required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin admits only administrators.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok || !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetSessionCookie writes the signed session token as an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(sessionTTL.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
