package models

import "time"

// StreakTypeDailyLogging is the streak every recorded entry feeds.
const StreakTypeDailyLogging = "daily_logging"

// UserStreak is a persisted consecutive-day counter for one activity type.
// Invariant: LongestStreak >= CurrentStreak after every update.
type UserStreak struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"index:idx_user_streaks,unique;not null" json:"user_id"`
	StreakType       string    `gorm:"index:idx_user_streaks,unique;size:32;not null" json:"streak_type"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	LastActivityDate time.Time `gorm:"type:date" json:"last_activity_date"`
	StreakStartDate  time.Time `gorm:"type:date" json:"streak_start_date"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
