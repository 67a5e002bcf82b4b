package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moodlog/server/analytics"
	"github.com/moodlog/server/prediction"
	"github.com/moodlog/server/repository"
	"github.com/moodlog/server/utils"
)

// AnalyticsController serves derived read-only insight over a user's
// entries. Responses are cached in redis and invalidated on entry writes.
type AnalyticsController struct {
	store     *repository.Store
	predictor *prediction.Predictor
}

// NewAnalyticsController creates a new controller instance.
func NewAnalyticsController(store *repository.Store, predictor *prediction.Predictor) *AnalyticsController {
	return &AnalyticsController{store: store, predictor: predictor}
}

// Summary returns the range analytics report. Defaults to the last 30
// days; override with ?start and ?end (YYYY-MM-DD).
func (a *AnalyticsController) Summary(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if s := ctx.Query("start"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40002, "start must be YYYY-MM-DD")
			return
		}
		start = parsed
	}
	if s := ctx.Query("end"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40002, "end must be YYYY-MM-DD")
			return
		}
		end = parsed
	}

	cacheKey := fmt.Sprintf("cache:analytics:%d:summary:%s:%s",
		userID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	var cached analytics.Summary
	if hitCache(cacheKey, &cached) {
		utils.Success(ctx, cached)
		return
	}

	entries, err := a.store.Entries.ByUserAndDateRange(userID, start, end)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load entries")
		return
	}

	summary := analytics.Summarize(entries)
	utils.CacheSetJSON(cacheKey, summary, 0)
	utils.Success(ctx, summary)
}

// Patterns returns day-of-week and monthly groupings plus the weekly-cycle
// detection when present.
func (a *AnalyticsController) Patterns(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := fmt.Sprintf("cache:analytics:%d:patterns", userID)
	var cached gin.H
	if hitCache(cacheKey, &cached) {
		utils.Success(ctx, cached)
		return
	}

	entries, err := a.store.Entries.ByUser(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load entries")
		return
	}

	result := gin.H{
		"patterns":     analytics.Patterns(entries),
		"weekly_cycle": analytics.DetectWeeklyCycle(entries, time.Now()),
	}
	utils.CacheSetJSON(cacheKey, result, 0)
	utils.Success(ctx, result)
}

// Streaks returns consecutive-day mood runs plus the recomputed display
// logging streak.
func (a *AnalyticsController) Streaks(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	entries, err := a.store.Entries.ByUser(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load entries")
		return
	}

	utils.Success(ctx, gin.H{
		"runs":                   analytics.Runs(entries),
		"current_logging_streak": analytics.CurrentLoggingStreak(entries, time.Now()),
	})
}

// Triggers returns tag-correlation detections.
func (a *AnalyticsController) Triggers(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := fmt.Sprintf("cache:analytics:%d:triggers", userID)
	var cached []analytics.Detection
	if hitCache(cacheKey, &cached) {
		utils.Success(ctx, cached)
		return
	}

	entries, err := a.store.Entries.ByUser(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load entries")
		return
	}

	triggers := analytics.DetectTagTriggers(entries, time.Now())
	utils.CacheSetJSON(cacheKey, triggers, 0)
	utils.Success(ctx, triggers)
}

// WeeklySummary reports the week starting at ?week_start, defaulting to
// the current week's Sunday.
func (a *AnalyticsController) WeeklySummary(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	now := time.Now()
	weekStart := now.AddDate(0, 0, -int(now.Weekday()))
	if s := ctx.Query("week_start"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40002, "week_start must be YYYY-MM-DD")
			return
		}
		weekStart = parsed
	}

	entries, err := a.store.Entries.ByUser(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load entries")
		return
	}

	utils.Success(ctx, analytics.SummarizeWeek(entries, weekStart))
}

// Prediction generates the next-mood insight.
func (a *AnalyticsController) Prediction(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	entries, err := a.store.Entries.ByUser(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load entries")
		return
	}

	insight := a.predictor.Predict(ctx.Request.Context(), entries, time.Now())
	utils.Success(ctx, insight)
}

// hitCache loads a cached JSON value into out, reporting whether it was
// present and well-formed.
func hitCache(key string, out interface{}) bool {
	b, ok := utils.CacheGetBytes(key)
	if !ok {
		return false
	}
	return json.Unmarshal(b, out) == nil
}
