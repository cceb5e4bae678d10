package container

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/waypoint-app/waypoint/internal/config"
	"github.com/waypoint-app/waypoint/internal/models"
	"github.com/waypoint-app/waypoint/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config
	DB     *gorm.DB
	Repo   *models.GormRepo

	UserService   *services.UserService
	PlaceService  *services.PlaceService
	PhotoService  *services.PhotoService
	ReviewService *services.ReviewService
	QRService     *services.QRService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, cfg *config.Config, db *gorm.DB) (*Container, error) {
	repo := models.GormNewRepo(db)

	qrService, err := services.NewQRService(cfg.BaseURL, cfg.QRLevel, cfg.QRSize)
	if err != nil {
		return nil, err
	}

	return &Container{
		Logger: logger,
		Config: cfg,
		DB:     db,
		Repo:   repo,

		UserService:   services.NewUserService(repo),
		PlaceService:  services.NewPlaceService(repo, repo, repo),
		PhotoService:  services.NewPhotoService(repo, repo, cfg),
		ReviewService: services.NewReviewService(repo, repo),
		QRService:     qrService,
	}, nil
}
