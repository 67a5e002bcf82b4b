package gamification

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/moodlog/server/models"
	"github.com/moodlog/server/repository"
	"github.com/moodlog/server/utils"
)

// ErrCorruptStreak reports a persisted streak whose current length exceeds
// its longest. The record is never repaired here; the caller owns recovery.
var ErrCorruptStreak = errors.New("streak record corrupt: current exceeds longest")

// AchievementEngine evaluates the achievement catalog against a user's
// history. Evaluation is idempotent: completed achievements are never
// re-awarded or modified.
type AchievementEngine struct {
	catalog          repository.AchievementRepository
	userAchievements repository.UserAchievementRepository
	entries          repository.EntryRepository
	streaks          repository.StreakRepository
}

// NewAchievementEngine creates an engine over the store's repositories.
func NewAchievementEngine(store *repository.Store) *AchievementEngine {
	return &AchievementEngine{
		catalog:          store.Achievements,
		userAchievements: store.UserAchievements,
		entries:          store.Entries,
		streaks:          store.Streaks,
	}
}

// Evaluate computes progress for every not-yet-completed catalog achievement
// and upserts the result, returning the records that changed plus an
// achievement_earned event per new completion. A failure to score one
// achievement does not stop the others; storage failures do.
func (e *AchievementEngine) Evaluate(userID uint, now time.Time) ([]models.UserAchievement, []Event, error) {
	available, err := e.catalog.All()
	if err != nil {
		return nil, nil, err
	}
	existing, err := e.userAchievements.ByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := e.entries.ByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	dailyStreak, err := e.dailyStreak(userID)
	if err != nil {
		return nil, nil, err
	}

	byAchievement := make(map[uint]*models.UserAchievement, len(existing))
	for i := range existing {
		byAchievement[existing[i].AchievementID] = &existing[i]
	}

	var updated []models.UserAchievement
	var events []Event

	for _, achievement := range available {
		prior := byAchievement[achievement.ID]
		if prior != nil && prior.IsCompleted {
			continue
		}

		progress, err := e.progressFor(achievement, entries, dailyStreak, now)
		if err != nil {
			// Scoring one achievement must not block the rest.
			if utils.Sugar != nil {
				utils.Sugar.Warnf("achievement %d progress failed for user %d: %v", achievement.ID, userID, err)
			}
			continue
		}

		if progress >= achievement.RequiredValue {
			earned := now
			record := prior
			if record == nil {
				record = &models.UserAchievement{
					UserID:        userID,
					AchievementID: achievement.ID,
				}
			}
			record.Progress = progress
			record.IsCompleted = true
			record.EarnedAt = &earned
			record.Achievement = achievement
			if err := e.userAchievements.Upsert(record); err != nil {
				return nil, nil, err
			}
			updated = append(updated, *record)
			events = append(events, newEvent(EventAchievementEarned, userID, achievement.Name, achievement.PointsValue, now))
			continue
		}

		if prior == nil {
			record := &models.UserAchievement{
				UserID:        userID,
				AchievementID: achievement.ID,
				Progress:      progress,
				Achievement:   achievement,
			}
			if err := e.userAchievements.Upsert(record); err != nil {
				return nil, nil, err
			}
			updated = append(updated, *record)
		} else if prior.Progress != progress {
			prior.Progress = progress
			if err := e.userAchievements.Upsert(prior); err != nil {
				return nil, nil, err
			}
			updated = append(updated, *prior)
		}
	}

	return updated, events, nil
}

// dailyStreak loads the daily_logging streak and verifies the longest >=
// current invariant before anything is scored against it.
func (e *AchievementEngine) dailyStreak(userID uint) (*models.UserStreak, error) {
	streaks, err := e.streaks.ByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range streaks {
		if streaks[i].StreakType == models.StreakTypeDailyLogging {
			if streaks[i].CurrentStreak > streaks[i].LongestStreak {
				return nil, fmt.Errorf("user %d %s: %w", userID, streaks[i].StreakType, ErrCorruptStreak)
			}
			return &streaks[i], nil
		}
	}
	return nil, nil
}

func (e *AchievementEngine) progressFor(a models.Achievement, entries []models.MoodEntry, daily *models.UserStreak, now time.Time) (int, error) {
	switch a.CriteriaType {
	case models.CriteriaStreak:
		if daily == nil {
			return 0, nil
		}
		return daily.CurrentStreak, nil
	case models.CriteriaCount:
		return countProgress(entries, a.TimeframeDays, now), nil
	case models.CriteriaAverage:
		return averageProgress(entries, a.TimeframeDays, now), nil
	case models.CriteriaImprovement:
		return improvementProgress(entries), nil
	default:
		return 0, fmt.Errorf("unknown criteria type %q", a.CriteriaType)
	}
}

func countProgress(entries []models.MoodEntry, timeframeDays int, now time.Time) int {
	if timeframeDays == 0 {
		return len(entries)
	}
	cutoff := models.DateOnly(now).AddDate(0, 0, -timeframeDays)
	count := 0
	for _, e := range entries {
		if !e.EntryDate.Before(cutoff) {
			count++
		}
	}
	return count
}

func averageProgress(entries []models.MoodEntry, timeframeDays int, now time.Time) int {
	relevant := entries
	if timeframeDays != 0 {
		cutoff := models.DateOnly(now).AddDate(0, 0, -timeframeDays)
		relevant = nil
		for _, e := range entries {
			if !e.EntryDate.Before(cutoff) {
				relevant = append(relevant, e)
			}
		}
	}
	if len(relevant) == 0 {
		return 0
	}
	sum := 0
	for _, e := range relevant {
		sum += e.MoodLevel
	}
	return int(math.Round(float64(sum) / float64(len(relevant))))
}

// improvementProgress scales the second-half vs first-half average gap by
// ten. Large swings can push this past a 0-100 scale; that matches the
// shipped behavior and stays until product says otherwise.
func improvementProgress(entries []models.MoodEntry) int {
	if len(entries) < 14 {
		return 0
	}
	ordered := make([]models.MoodEntry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].EntryDate.Before(ordered[j].EntryDate) })

	mid := len(ordered) / 2
	firstAvg := meanMood(ordered[:mid])
	secondAvg := meanMood(ordered[mid:])

	progress := int(math.Round((secondAvg - firstAvg) * 10))
	if progress < 0 {
		return 0
	}
	return progress
}

func meanMood(entries []models.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.MoodLevel
	}
	return float64(sum) / float64(len(entries))
}
