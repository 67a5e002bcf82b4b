// Package gamification turns raw mood entries into derived reward state:
// persisted streak counters, achievement progress, and the cached per-user
// stats summary.
package gamification

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the engines. The core never dispatches
// notifications itself; callers receive events as return values and route
// them to whatever notification mechanism they own.
const (
	EventAchievementEarned = "achievement_earned"
	EventStreakMilestone   = "streak_milestone"
)

// Event describes something noteworthy that happened during an update or
// evaluation cycle.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	UserID     uint      `json:"user_id"`
	Name       string    `json:"name"`  // achievement name or streak type
	Value      int       `json:"value"` // points earned or streak length
	OccurredAt time.Time `json:"occurred_at"`
}

func newEvent(eventType string, userID uint, name string, value int, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		Name:       name,
		Value:      value,
		OccurredAt: at,
	}
}
