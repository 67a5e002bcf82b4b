package gamification

import (
	"math"
	"sort"
	"time"

	"github.com/moodlog/server/models"
	"github.com/moodlog/server/repository"
)

// statsMaxAge is how long a persisted stats row may be served without
// recomputation.
const statsMaxAge = time.Hour

// StatsAggregator maintains the materialized UserStats row.
type StatsAggregator struct {
	entries          repository.EntryRepository
	streaks          repository.StreakRepository
	userAchievements repository.UserAchievementRepository
	stats            repository.StatsRepository
}

// NewStatsAggregator creates an aggregator over the store's repositories.
func NewStatsAggregator(store *repository.Store) *StatsAggregator {
	return &StatsAggregator{
		entries:          store.Entries,
		streaks:          store.Streaks,
		userAchievements: store.UserAchievements,
		stats:            store.Stats,
	}
}

// GetStats returns the user's summary, reusing the persisted row when it is
// younger than an hour and recomputing from scratch otherwise. now is
// explicit so staleness is testable.
func (a *StatsAggregator) GetStats(userID uint, now time.Time) (models.UserStats, error) {
	cached, err := a.stats.ByUser(userID)
	if err != nil {
		return models.UserStats{}, err
	}
	if cached != nil && now.Sub(cached.LastUpdated) < statsMaxAge {
		return *cached, nil
	}
	return a.refresh(userID, cached, now)
}

// Refresh recomputes and persists the summary unconditionally, ignoring the
// staleness window. Called after writes that change the inputs.
func (a *StatsAggregator) Refresh(userID uint, now time.Time) (models.UserStats, error) {
	cached, err := a.stats.ByUser(userID)
	if err != nil {
		return models.UserStats{}, err
	}
	return a.refresh(userID, cached, now)
}

func (a *StatsAggregator) refresh(userID uint, cached *models.UserStats, now time.Time) (models.UserStats, error) {
	entries, err := a.entries.ByUser(userID)
	if err != nil {
		return models.UserStats{}, err
	}
	achievements, err := a.userAchievements.ByUser(userID)
	if err != nil {
		return models.UserStats{}, err
	}
	streaks, err := a.streaks.ByUser(userID)
	if err != nil {
		return models.UserStats{}, err
	}

	stats := models.UserStats{
		UserID:       userID,
		TotalEntries: len(entries),
		TotalPoints:  totalPoints(entries, achievements, streaks),
		LastUpdated:  now,
	}
	for _, ua := range achievements {
		if ua.IsCompleted {
			stats.AchievementsEarned++
		}
	}
	for _, s := range streaks {
		if s.StreakType == models.StreakTypeDailyLogging {
			stats.CurrentDailyStreak = s.CurrentStreak
			stats.LongestDailyStreak = s.LongestStreak
		}
	}

	if len(entries) > 0 {
		today := models.DateOnly(now)
		stats.AverageMoodAllTime = meanMood(entries)
		stats.AverageMood30Days = windowedMean(entries, today.AddDate(0, 0, -30))
		stats.AverageMood7Days = windowedMean(entries, today.AddDate(0, 0, -7))
		stats.FirstEntryDate, stats.LastEntryDate = dateBounds(entries)
		stats.FavoriteTag = favoriteTag(entries)
		stats.ConsistencyScore = consistencyScore(entries, today)
	}

	if cached != nil {
		stats.ID = cached.ID
	}
	if err := a.stats.Upsert(&stats); err != nil {
		return models.UserStats{}, err
	}
	return stats, nil
}

// totalPoints sums completed achievement points, 10 points per entry, and 5
// points per day of each streak type's longest run.
func totalPoints(entries []models.MoodEntry, achievements []models.UserAchievement, streaks []models.UserStreak) int {
	points := 0
	for _, ua := range achievements {
		if ua.IsCompleted {
			points += ua.Achievement.PointsValue
		}
	}
	points += len(entries) * 10
	for _, s := range streaks {
		points += s.LongestStreak * 5
	}
	return points
}

// windowedMean averages entries on or after cutoff; 0 when the window is empty.
func windowedMean(entries []models.MoodEntry, cutoff time.Time) float64 {
	var sum, count int
	for _, e := range entries {
		if !e.EntryDate.Before(cutoff) {
			sum += e.MoodLevel
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

func dateBounds(entries []models.MoodEntry) (first, last time.Time) {
	first, last = entries[0].EntryDate, entries[0].EntryDate
	for _, e := range entries[1:] {
		if e.EntryDate.Before(first) {
			first = e.EntryDate
		}
		if e.EntryDate.After(last) {
			last = e.EntryDate
		}
	}
	return first, last
}

// favoriteTag returns the most frequent tag name across all entries. Ties
// resolve to the tag seen first, so repeated recomputation is stable.
func favoriteTag(entries []models.MoodEntry) string {
	counts := map[string]int{}
	var order []string
	for _, e := range entries {
		for _, tag := range e.Tags {
			if _, seen := counts[tag.Name]; !seen {
				order = append(order, tag.Name)
			}
			counts[tag.Name]++
		}
	}
	if len(order) == 0 {
		return ""
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	return order[0]
}

// consistencyScore measures logging regularity over the user's active span
// with a small recency bonus, 0-100. Undefined below seven entries.
func consistencyScore(entries []models.MoodEntry, today time.Time) int {
	if len(entries) < 7 {
		return 0
	}
	first, last := dateBounds(entries)
	spanDays := int(last.Sub(first).Hours()/24) + 1

	ratio := float64(len(entries)) / float64(spanDays)

	recentCutoff := today.AddDate(0, 0, -7)
	recent := 0
	for _, e := range entries {
		if !e.EntryDate.Before(recentCutoff) {
			recent++
		}
	}
	bonus := math.Min(0.2, float64(recent)/7.0*0.2)

	score := int(math.Round((ratio + bonus) * 100))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
