package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moodlog/server/gamification"
	"github.com/moodlog/server/middleware"
	"github.com/moodlog/server/models"
	"github.com/moodlog/server/repository"
	"github.com/moodlog/server/utils"
)

// EntryController handles mood entry CRUD and the derived-state pipeline
// that runs when an entry is recorded.
type EntryController struct {
	store *repository.Store
}

// NewEntryController creates a new controller instance.
func NewEntryController(store *repository.Store) *EntryController {
	return &EntryController{store: store}
}

type entryRequest struct {
	MoodLevel int    `json:"mood_level" binding:"required,min=1,max=10"`
	Notes     string `json:"notes"`
	Symptoms  string `json:"symptoms"`
	EntryDate string `json:"entry_date"` // YYYY-MM-DD, defaults to today
	TagIDs    []uint `json:"tag_ids"`
}

// Create records a mood entry and runs the full gamification pipeline in
// one transaction: insert, streak update, achievement evaluation, stats
// refresh. The response carries any events the pipeline emitted.
func (e *EntryController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req entryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	entryDate := time.Now()
	if req.EntryDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.EntryDate, time.Local)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40002, "entry_date must be YYYY-MM-DD")
			return
		}
		entryDate = parsed
	}

	existing, err := e.store.Entries.ByUserAndDate(userID, entryDate)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to check existing entry")
		return
	}
	if existing != nil {
		utils.Error(ctx, http.StatusConflict, 40910, "an entry already exists for this date")
		return
	}

	tags, err := e.resolveTags(req.TagIDs)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, err.Error())
		return
	}

	entry := models.MoodEntry{
		UserID:    userID,
		MoodLevel: req.MoodLevel,
		Notes:     utils.Sanitize(req.Notes),
		Symptoms:  utils.Sanitize(req.Symptoms),
		EntryDate: models.DateOnly(entryDate),
	}

	now := time.Now()
	var events []gamification.Event

	err = e.store.Transaction(func(tx *repository.Store) error {
		if err := tx.Entries.Create(&entry); err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Entries.ReplaceTags(&entry, tags); err != nil {
				return err
			}
		}

		tracker := gamification.NewStreakTracker(tx.Streaks)
		_, streakEvents, err := tracker.Update(userID, models.StreakTypeDailyLogging, entry.EntryDate)
		if err != nil {
			return err
		}
		events = append(events, streakEvents...)

		engine := gamification.NewAchievementEngine(tx)
		_, achievementEvents, err := engine.Evaluate(userID, now)
		if err != nil {
			return err
		}
		events = append(events, achievementEvents...)

		aggregator := gamification.NewStatsAggregator(tx)
		_, err = aggregator.Refresh(userID, now)
		return err
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to record entry")
		return
	}

	invalidateUserCaches(userID)

	entry.Tags = tags
	utils.Success(ctx, gin.H{
		"entry":  entry,
		"events": events,
	})
}

// List returns the user's entries, optionally bounded by ?start and ?end.
func (e *EntryController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	startStr, endStr := ctx.Query("start"), ctx.Query("end")
	var entries []models.MoodEntry
	var err error
	if startStr != "" && endStr != "" {
		var start, end time.Time
		if start, err = time.ParseInLocation("2006-01-02", startStr, time.Local); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40002, "start must be YYYY-MM-DD")
			return
		}
		if end, err = time.ParseInLocation("2006-01-02", endStr, time.Local); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40002, "end must be YYYY-MM-DD")
			return
		}
		entries, err = e.store.Entries.ByUserAndDateRange(userID, start, end)
	} else {
		entries, err = e.store.Entries.ByUser(userID)
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to list entries")
		return
	}
	utils.Success(ctx, entries)
}

// Recent returns the latest N entries, default 7, capped at 100.
func (e *EntryController) Recent(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	limit := 7
	if l, err := strconv.Atoi(ctx.Query("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	entries, err := e.store.Entries.Recent(userID, limit)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to list entries")
		return
	}
	utils.Success(ctx, entries)
}

// ByDate returns the single entry for a calendar day, or null.
func (e *EntryController) ByDate(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", ctx.Param("date"), time.Local)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "date must be YYYY-MM-DD")
		return
	}

	entry, err := e.store.Entries.ByUserAndDate(userID, date)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load entry")
		return
	}
	utils.Success(ctx, entry)
}

// Update modifies an entry owned by the caller. The entry date is fixed at
// creation; level, text, and tags may change.
func (e *EntryController) Update(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid entry id")
		return
	}

	var req entryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	entry, err := e.store.Entries.ByID(uint(id))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load entry")
		return
	}
	if entry == nil || entry.UserID != userID {
		utils.Error(ctx, http.StatusNotFound, 40420, "entry not found")
		return
	}

	tags, err := e.resolveTags(req.TagIDs)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, err.Error())
		return
	}

	entry.MoodLevel = req.MoodLevel
	entry.Notes = utils.Sanitize(req.Notes)
	entry.Symptoms = utils.Sanitize(req.Symptoms)
	updated := time.Now()
	entry.UpdatedAt = &updated

	err = e.store.Transaction(func(tx *repository.Store) error {
		if err := tx.Entries.Save(entry); err != nil {
			return err
		}
		if err := tx.Entries.ReplaceTags(entry, tags); err != nil {
			return err
		}
		aggregator := gamification.NewStatsAggregator(tx)
		_, err := aggregator.Refresh(userID, updated)
		return err
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to update entry")
		return
	}

	invalidateUserCaches(userID)

	entry.Tags = tags
	utils.Success(ctx, entry)
}

// Delete removes an entry owned by the caller.
func (e *EntryController) Delete(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid entry id")
		return
	}

	entry, err := e.store.Entries.ByID(uint(id))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load entry")
		return
	}
	if entry == nil || entry.UserID != userID {
		utils.Error(ctx, http.StatusNotFound, 40420, "entry not found")
		return
	}

	now := time.Now()
	err = e.store.Transaction(func(tx *repository.Store) error {
		if err := tx.Entries.Delete(entry); err != nil {
			return err
		}
		aggregator := gamification.NewStatsAggregator(tx)
		_, err := aggregator.Refresh(userID, now)
		return err
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to delete entry")
		return
	}

	invalidateUserCaches(userID)
	utils.Success(ctx, gin.H{"deleted": true})
}

// Export streams the user's full history as CSV or JSON (?format=csv|json).
func (e *EntryController) Export(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	entries, err := e.store.Entries.ByUser(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to list entries")
		return
	}

	if ctx.DefaultQuery("format", "json") != "csv" {
		utils.Success(ctx, entries)
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="mood_entries.csv"`)

	w := csv.NewWriter(ctx.Writer)
	_ = w.Write([]string{"entry_date", "mood_level", "mood_category", "notes", "symptoms", "tags"})
	for i := range entries {
		entry := &entries[i]
		names := make([]string, len(entry.Tags))
		for j, tag := range entry.Tags {
			names[j] = tag.Name
		}
		_ = w.Write([]string{
			entry.EntryDate.Format("2006-01-02"),
			strconv.Itoa(entry.MoodLevel),
			entry.MoodCategory(),
			entry.Notes,
			entry.Symptoms,
			strings.Join(names, ";"),
		})
	}
	w.Flush()
}

// resolveTags loads the requested tags and rejects ids that do not resolve
// to active tags.
func (e *EntryController) resolveTags(ids []uint) ([]models.MoodTag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tags, err := e.store.Tags.ByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags")
	}
	if len(tags) != len(ids) {
		return nil, fmt.Errorf("one or more tag ids are unknown")
	}
	for _, tag := range tags {
		if !tag.IsActive {
			return nil, fmt.Errorf("tag '%s' is no longer active", tag.Name)
		}
	}
	return tags, nil
}

// invalidateUserCaches drops the cached analytics and gamification reads
// for a user after any entry write.
func invalidateUserCaches(userID uint) {
	utils.InvalidateByPrefix(fmt.Sprintf("cache:analytics:%d:", userID))
	utils.InvalidateByPrefix(fmt.Sprintf("cache:gamification:%d:", userID))
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}
