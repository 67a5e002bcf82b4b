package main

import (
	"github.com/moodlog/server/config"
	"github.com/moodlog/server/models"
	"github.com/moodlog/server/routes"
	"github.com/moodlog/server/seed"
	"github.com/moodlog/server/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.MoodEntry{},
		&models.MoodTag{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.UserStreak{},
		&models.UserStats{},
	)

	if err := seed.Run(db); err != nil {
		utils.Sugar.Fatalf("failed to seed catalogs: %v", err)
	}

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
