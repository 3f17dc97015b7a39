package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/yukikurage/project-dashboard-api/internal/config"
	"github.com/yukikurage/project-dashboard-api/internal/database"
	"github.com/yukikurage/project-dashboard-api/internal/logger"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// promote-admin grants the ADMIN role to an existing user. The first admin
// has to be created this way since only admins can change roles.
func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: promote-admin <email>")
		os.Exit(1)
	}

	email := os.Args[1]

	cfg := config.Load()
	zapLog, err := logger.New(cfg.GinMode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	db, err := database.Connect(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to connect to database", zap.Error(err))
	}

	users := repository.NewStore(db).Users
	user, err := users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fmt.Printf("No user found with email: %s\n", email)
		os.Exit(1)
	}
	if err != nil {
		zapLog.Fatal("Failed to find user", zap.Error(err))
	}

	user.Role = models.RoleAdmin
	if err := users.Update(user); err != nil {
		zapLog.Fatal("Failed to update user", zap.Error(err))
	}

	fmt.Printf("Successfully promoted %s to admin\n", email)
}
