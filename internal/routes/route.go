package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/waypoint-app/waypoint/internal/container"
	"github.com/waypoint-app/waypoint/internal/handlers"
	"github.com/waypoint-app/waypoint/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(ctn *container.Container) *gin.Engine {
	cfg := ctn.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BaseURL, "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(ctn.Logger))
	r.Use(middleware.ErrorHandler(ctn.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.Session(cfg))

	// Processed uploads and issued QR images
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/api/v1/places")
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "waypoint-api",
			})
		})

		// public routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", handlers.Register(ctn.UserService))
			auth.POST("/login", handlers.Login(ctn.UserService, cfg))
			auth.POST("/logout", handlers.Logout(cfg))
			auth.GET("/profile", middleware.RequireUser(), handlers.Profile(ctn.UserService, ctn.PhotoService))
		}

		v1.GET("/places", handlers.ListPlaces(ctn.PlaceService))
		v1.GET("/places/:id", handlers.GetPlace(ctn.PlaceService))
		v1.GET("/meta/categories", handlers.Categories())

		// submitter routes: authenticated users, or guest sessions in guest mode
		submit := v1.Group("/")
		submit.Use(middleware.RequireSubmitter(cfg))
		{
			submit.POST("/places/:id/photos", handlers.UploadPhoto(ctn.PhotoService))
			submit.POST("/places/:id/reviews", handlers.SubmitReview(ctn.ReviewService))
			submit.DELETE("/photos/:id", handlers.DeletePhoto(ctn.PhotoService))
		}

		// admin routes
		admin := v1.Group("/")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/places", handlers.CreatePlace(ctn.PlaceService, ctn.PhotoService, ctn.QRService, ctn.Repo, cfg.UploadDir))
			admin.GET("/places/:id/qr", handlers.PlaceQR(ctn.PlaceService, ctn.QRService))
			admin.POST("/scan", handlers.IngestScan(ctn.PlaceService))
		}
	}

	return r
}
