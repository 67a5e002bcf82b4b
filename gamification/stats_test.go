package gamification

import (
	"testing"
	"time"

	"github.com/moodlog/server/models"
)

func TestStatsAggregator_CacheHitReturnsRowUnmodified(t *testing.T) {
	store, entries, _, _, _, stats := newFakeStore()

	now := day(2024, time.April, 10)
	cached := models.UserStats{
		ID:           1,
		UserID:       1,
		TotalEntries: 99,
		TotalPoints:  1234,
		LastUpdated:  now.Add(-30 * time.Minute),
	}
	stats.rows = []models.UserStats{cached}
	// Entries that would change the totals if recomputation ran.
	entries.entries = []models.MoodEntry{entryOn(1, now, 5)}

	aggregator := NewStatsAggregator(store)
	got, err := aggregator.GetStats(1, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalEntries != 99 || got.TotalPoints != 1234 {
		t.Errorf("cache hit recomputed: %+v", got)
	}
	if !got.LastUpdated.Equal(cached.LastUpdated) {
		t.Error("cache hit touched LastUpdated")
	}
}

func TestStatsAggregator_StaleRowRecomputes(t *testing.T) {
	store, entries, streaks, _, userAchievements, stats := newFakeStore()

	now := day(2024, time.April, 10)
	stats.rows = []models.UserStats{{
		ID:          7,
		UserID:      1,
		LastUpdated: now.Add(-2 * time.Hour),
	}}

	for i := 0; i < 8; i++ {
		entries.entries = append(entries.entries, entryOn(1, now.AddDate(0, 0, -i), 6, "Happy"))
	}
	streaks.streaks = []models.UserStreak{{
		UserID:        1,
		StreakType:    models.StreakTypeDailyLogging,
		CurrentStreak: 8,
		LongestStreak: 8,
	}}
	earned := now.AddDate(0, 0, -1)
	userAchievements.records = []models.UserAchievement{{
		UserID:        1,
		AchievementID: 1,
		IsCompleted:   true,
		EarnedAt:      &earned,
		Achievement:   models.Achievement{ID: 1, PointsValue: 25},
	}}

	aggregator := NewStatsAggregator(store)
	got, err := aggregator.GetStats(1, now)
	if err != nil {
		t.Fatal(err)
	}

	if got.TotalEntries != 8 {
		t.Errorf("TotalEntries = %d, want 8", got.TotalEntries)
	}
	// 25 achievement points + 10x8 entries + 5x8 longest streak days.
	if got.TotalPoints != 25+80+40 {
		t.Errorf("TotalPoints = %d, want %d", got.TotalPoints, 25+80+40)
	}
	if got.AchievementsEarned != 1 {
		t.Errorf("AchievementsEarned = %d, want 1", got.AchievementsEarned)
	}
	if got.CurrentDailyStreak != 8 || got.LongestDailyStreak != 8 {
		t.Errorf("daily streak = %d/%d, want 8/8", got.CurrentDailyStreak, got.LongestDailyStreak)
	}
	if got.AverageMoodAllTime != 6 {
		t.Errorf("AverageMoodAllTime = %v, want 6", got.AverageMoodAllTime)
	}
	if got.FavoriteTag != "Happy" {
		t.Errorf("FavoriteTag = %q, want Happy", got.FavoriteTag)
	}
	if got.ID != 7 {
		t.Errorf("recompute allocated new row id %d, want reuse of 7", got.ID)
	}
	if !got.LastUpdated.Equal(now) {
		t.Error("LastUpdated not advanced")
	}

	// Recomputing again from the same inputs yields identical aggregates.
	again, err := aggregator.Refresh(1, now)
	if err != nil {
		t.Fatal(err)
	}
	got.LastUpdated, again.LastUpdated = time.Time{}, time.Time{}
	if got != again {
		t.Errorf("recompute not deterministic:\n first %+v\nsecond %+v", got, again)
	}
}

func TestStatsAggregator_WindowedAverages(t *testing.T) {
	store, entries, _, _, _, _ := newFakeStore()

	now := day(2024, time.June, 30)
	// Three old entries at level 2, four recent at level 8.
	for i := 0; i < 3; i++ {
		entries.entries = append(entries.entries, entryOn(1, now.AddDate(0, 0, -40-i), 2))
	}
	for i := 0; i < 4; i++ {
		entries.entries = append(entries.entries, entryOn(1, now.AddDate(0, 0, -i), 8))
	}

	aggregator := NewStatsAggregator(store)
	got, err := aggregator.GetStats(1, now)
	if err != nil {
		t.Fatal(err)
	}

	if want := (3*2 + 4*8) / 7.0; got.AverageMoodAllTime != want {
		t.Errorf("all-time = %v, want %v", got.AverageMoodAllTime, want)
	}
	if got.AverageMood30Days != 8 {
		t.Errorf("30-day = %v, want 8", got.AverageMood30Days)
	}
	if got.AverageMood7Days != 8 {
		t.Errorf("7-day = %v, want 8", got.AverageMood7Days)
	}
	if !got.FirstEntryDate.Equal(now.AddDate(0, 0, -42)) {
		t.Errorf("first entry date = %v", got.FirstEntryDate)
	}
	if !got.LastEntryDate.Equal(now) {
		t.Errorf("last entry date = %v", got.LastEntryDate)
	}
}

func TestStatsAggregator_FewEntriesHaveZeroConsistency(t *testing.T) {
	store, entries, _, _, _, _ := newFakeStore()

	now := day(2024, time.June, 30)
	for i := 0; i < 6; i++ {
		entries.entries = append(entries.entries, entryOn(1, now.AddDate(0, 0, -i), 5))
	}

	aggregator := NewStatsAggregator(store)
	got, err := aggregator.GetStats(1, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.ConsistencyScore != 0 {
		t.Errorf("ConsistencyScore = %d, want 0 below 7 entries", got.ConsistencyScore)
	}
}

func TestConsistencyScoreBounds(t *testing.T) {
	today := day(2024, time.June, 30)

	// Daily logging for 30 days: ratio 1.0 plus full recency bonus would
	// exceed 100 without the clamp.
	var dense []models.MoodEntry
	for i := 0; i < 30; i++ {
		dense = append(dense, entryOn(1, today.AddDate(0, 0, -i), 5))
	}
	if got := consistencyScore(dense, today); got != 100 {
		t.Errorf("dense history score = %d, want clamped 100", got)
	}

	// Sparse history over a long span stays near the low end.
	var sparse []models.MoodEntry
	for i := 0; i < 8; i++ {
		sparse = append(sparse, entryOn(1, today.AddDate(0, 0, -i*30), 5))
	}
	got := consistencyScore(sparse, today)
	if got < 0 || got > 100 {
		t.Errorf("sparse history score = %d, want within [0,100]", got)
	}
}

func TestFavoriteTagStableTieBreak(t *testing.T) {
	now := day(2024, time.June, 1)
	entries := []models.MoodEntry{
		entryOn(1, now, 5, "Calm", "Happy"),
		entryOn(1, now.AddDate(0, 0, 1), 5, "Happy", "Calm"),
	}
	// Both tags appear twice; the first encountered wins.
	if got := favoriteTag(entries); got != "Calm" {
		t.Errorf("favoriteTag = %q, want Calm", got)
	}
}
