package models

import "time"

// UserStats is a materialized per-user summary. It is safe to discard and
// recompute at any time; readers may reuse a row younger than one hour.
type UserStats struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	TotalEntries       int       `json:"total_entries"`
	TotalPoints        int       `json:"total_points"`
	AchievementsEarned int       `json:"achievements_earned"`
	CurrentDailyStreak int       `json:"current_daily_streak"`
	LongestDailyStreak int       `json:"longest_daily_streak"`
	AverageMoodAllTime float64   `json:"average_mood_all_time"`
	AverageMood30Days  float64   `json:"average_mood_30_days"`
	AverageMood7Days   float64   `json:"average_mood_7_days"`
	FirstEntryDate     time.Time `gorm:"type:date" json:"first_entry_date"`
	LastEntryDate      time.Time `gorm:"type:date" json:"last_entry_date"`
	FavoriteTag        string    `gorm:"size:50" json:"favorite_tag"`
	ConsistencyScore   int       `json:"consistency_score"` // 0-100
	LastUpdated        time.Time `json:"last_updated"`
}
