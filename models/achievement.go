package models

import "time"

// CriteriaType enumerates how achievement progress is measured. The set is
// closed: evaluation rejects values outside these constants instead of
// guessing.
type CriteriaType string

const (
	CriteriaStreak      CriteriaType = "streak"      // current daily_logging streak length
	CriteriaCount       CriteriaType = "count"       // entries within the timeframe
	CriteriaAverage     CriteriaType = "average"     // rounded mean mood within the timeframe
	CriteriaImprovement CriteriaType = "improvement" // second-half vs first-half average, x10
)

// Valid reports whether c is one of the known criteria types.
func (c CriteriaType) Valid() bool {
	switch c {
	case CriteriaStreak, CriteriaCount, CriteriaAverage, CriteriaImprovement:
		return true
	}
	return false
}

// Achievement is a catalog-defined goal. The catalog is global and
// read-mostly; per-user state lives in UserAchievement.
type Achievement struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"size:100;not null" json:"name"`
	Description   string       `gorm:"size:255" json:"description"`
	Category      string       `gorm:"size:32" json:"category"` // consistency, progress, milestone, self-care
	IconClass     string       `gorm:"size:64" json:"icon_class"`
	BadgeColor    string       `gorm:"size:16" json:"badge_color"`
	PointsValue   int          `json:"points_value"`
	CriteriaType  CriteriaType `gorm:"size:16;not null" json:"criteria_type"`
	RequiredValue int          `json:"required_value"`
	TimeframeDays int          `json:"timeframe_days"` // 0 = all-time
	IsActive      bool         `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
}

// UserAchievement tracks one user's progress toward one achievement.
// Once IsCompleted is set, Progress never decreases and EarnedAt is frozen.
type UserAchievement struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"index:idx_user_achievements,unique;not null" json:"user_id"`
	AchievementID uint        `gorm:"index:idx_user_achievements,unique;not null" json:"achievement_id"`
	Progress      int         `json:"progress"`
	IsCompleted   bool        `json:"is_completed"`
	EarnedAt      *time.Time  `json:"earned_at"`
	Achievement   Achievement `json:"achievement"`
}
