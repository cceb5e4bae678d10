package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/waypoint-app/waypoint/internal/config"
	"github.com/waypoint-app/waypoint/internal/connect"
	"github.com/waypoint-app/waypoint/internal/models"
	"github.com/waypoint-app/waypoint/internal/services"
)

// createadmin bootstraps an administrator account.
func main() {
	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *username == "" || *email == "" || *password == "" {
		logger.Error("username, email and password are required")
		flag.Usage()
		os.Exit(2)
	}

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

	userService := services.NewUserService(models.GormNewRepo(db))

	user, err := userService.Register(context.Background(), *username, *email, *password)
	if err != nil {
		logger.Error("Failed to create admin user", "error", err)
		os.Exit(1)
	}

	if err := db.Model(user).Update("is_admin", true).Error; err != nil {
		logger.Error("Failed to grant admin flag", "error", err)
		os.Exit(1)
	}

	logger.Info("Admin user created successfully", "username", user.Username, "id", user.ID)
}
