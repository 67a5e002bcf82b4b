package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moodlog/server/config"
	"github.com/moodlog/server/controllers"
	"github.com/moodlog/server/middleware"
	"github.com/moodlog/server/prediction"
	"github.com/moodlog/server/repository"
	"github.com/moodlog/server/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	store := repository.NewStore(db)
	model := prediction.NewRemoteModel(cfg.PredictionModelURL, time.Duration(cfg.PredictionTimeout)*time.Millisecond)
	predictor := prediction.NewPredictor(modelOrNil(model))

	authController := controllers.NewAuthController(db)
	entryController := controllers.NewEntryController(store)
	tagController := controllers.NewTagController(store)
	analyticsController := controllers.NewAnalyticsController(store, predictor)
	gamificationController := controllers.NewGamificationController(store)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())

	protected.POST("/entries", entryController.Create)
	protected.GET("/entries", entryController.List)
	protected.GET("/entries/recent", entryController.Recent)
	protected.GET("/entries/by-date/:date", entryController.ByDate)
	protected.GET("/entries/export", entryController.Export)
	protected.PUT("/entries/:id", entryController.Update)
	protected.DELETE("/entries/:id", entryController.Delete)

	protected.GET("/tags", tagController.List)
	protected.GET("/tags/system", tagController.System)
	protected.POST("/tags", tagController.Create)
	protected.PUT("/tags/:id", tagController.Update)
	protected.DELETE("/tags/:id", tagController.Delete)

	protected.GET("/analytics", analyticsController.Summary)
	protected.GET("/analytics/patterns", analyticsController.Patterns)
	protected.GET("/analytics/streaks", analyticsController.Streaks)
	protected.GET("/analytics/triggers", analyticsController.Triggers)
	protected.GET("/analytics/weekly-summary", analyticsController.WeeklySummary)
	protected.GET("/analytics/prediction", analyticsController.Prediction)

	protected.GET("/gamification/stats", gamificationController.Stats)
	protected.GET("/gamification/achievements", gamificationController.Achievements)
	protected.GET("/gamification/achievements/mine", gamificationController.MyAchievements)
	protected.GET("/gamification/streaks", gamificationController.Streaks)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}

// modelOrNil keeps a nil *RemoteModel from becoming a non-nil Model
// interface value.
func modelOrNil(m *prediction.RemoteModel) prediction.Model {
	if m == nil {
		return nil
	}
	return m
}
