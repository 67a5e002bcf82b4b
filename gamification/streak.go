package gamification

import (
	"time"

	"github.com/moodlog/server/models"
	"github.com/moodlog/server/repository"
)

// StreakTracker maintains named consecutive-day counters per user.
//
// Update must be called at most once per (user, entry date) for a streak
// type; callers guarantee this by invoking it only when a date is first
// recorded.
type StreakTracker struct {
	streaks repository.StreakRepository
}

// NewStreakTracker creates a tracker over the given repository.
func NewStreakTracker(streaks repository.StreakRepository) *StreakTracker {
	return &StreakTracker{streaks: streaks}
}

// Update advances the (userID, streakType) counter for an entry recorded on
// entryDate and persists the result. A streak_milestone event is returned
// when the streak reaches a new longest that is a multiple of seven days.
func (t *StreakTracker) Update(userID uint, streakType string, entryDate time.Time) (models.UserStreak, []Event, error) {
	streak, err := t.getOrCreate(userID, streakType)
	if err != nil {
		return models.UserStreak{}, nil, err
	}

	today := models.DateOnly(entryDate)
	yesterday := today.AddDate(0, 0, -1)
	last := models.DateOnly(streak.LastActivityDate)

	switch {
	case last.Equal(yesterday):
		streak.CurrentStreak++
		streak.LastActivityDate = today
		streak.IsActive = true
	case last.Equal(today):
		// Duplicate same-day call; nothing changes.
		return streak, nil, nil
	case last.Before(yesterday):
		streak.CurrentStreak = 1
		streak.StreakStartDate = today
		streak.LastActivityDate = today
		streak.IsActive = true
	}

	var events []Event
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
		if streak.CurrentStreak%7 == 0 {
			events = append(events, newEvent(EventStreakMilestone, userID, streakType, streak.CurrentStreak, time.Now()))
		}
	}

	streak.UpdatedAt = time.Now()
	if err := t.streaks.Upsert(&streak); err != nil {
		return models.UserStreak{}, nil, err
	}

	return streak, events, nil
}

func (t *StreakTracker) getOrCreate(userID uint, streakType string) (models.UserStreak, error) {
	streaks, err := t.streaks.ByUser(userID)
	if err != nil {
		return models.UserStreak{}, err
	}
	for _, s := range streaks {
		if s.StreakType == streakType {
			return s, nil
		}
	}

	// The zero LastActivityDate predates any real entry date, so the first
	// update always takes the streak-broken branch and starts at 1.
	now := time.Now()
	streak := models.UserStreak{
		UserID:          userID,
		StreakType:      streakType,
		StreakStartDate: models.DateOnly(now),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := t.streaks.Upsert(&streak); err != nil {
		return models.UserStreak{}, err
	}
	return streak, nil
}
