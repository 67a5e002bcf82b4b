package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moodlog/server/gamification"
	"github.com/moodlog/server/repository"
	"github.com/moodlog/server/utils"
)

// GamificationController serves the reward state the engines maintain.
type GamificationController struct {
	store      *repository.Store
	aggregator *gamification.StatsAggregator
}

// NewGamificationController creates a new controller instance.
func NewGamificationController(store *repository.Store) *GamificationController {
	return &GamificationController{
		store:      store,
		aggregator: gamification.NewStatsAggregator(store),
	}
}

// Stats returns the user's summary, recomputing it when the persisted row
// is older than an hour.
func (g *GamificationController) Stats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	stats, err := g.aggregator.GetStats(userID, time.Now())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to compute stats")
		return
	}
	utils.Success(ctx, stats)
}

// Achievements returns the active achievement catalog.
func (g *GamificationController) Achievements(ctx *gin.Context) {
	catalog, err := g.store.Achievements.All()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load achievements")
		return
	}
	utils.Success(ctx, catalog)
}

// MyAchievements returns the caller's progress records.
func (g *GamificationController) MyAchievements(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	records, err := g.store.UserAchievements.ByUser(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load achievements")
		return
	}
	utils.Success(ctx, records)
}

// Streaks returns the caller's persisted streak counters.
func (g *GamificationController) Streaks(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	streaks, err := g.store.Streaks.ByUser(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load streaks")
		return
	}
	utils.Success(ctx, streaks)
}
