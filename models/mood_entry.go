package models

import (
	"time"

	"gorm.io/gorm"
)

// MoodEntry is one mood observation for a user on a calendar day.
// Uniqueness of (user_id, entry_date) is enforced at the write boundary
// before any derived state is computed.
type MoodEntry struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index:idx_entries_user_date,unique;not null" json:"user_id"`
	MoodLevel int        `gorm:"not null" json:"mood_level"` // 1-10
	Notes     string     `gorm:"size:1000" json:"notes"`
	Symptoms  string     `gorm:"size:500" json:"symptoms"`
	EntryDate time.Time  `gorm:"index:idx_entries_user_date,unique;type:date;not null" json:"entry_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	Tags      []MoodTag  `gorm:"many2many:mood_entry_tags;" json:"tags"`
}

// BeforeCreate normalizes the entry date to midnight so date equality
// behaves like calendar-day equality.
func (e *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	e.EntryDate = DateOnly(e.EntryDate)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return nil
}

// DateOnly truncates a timestamp to its calendar day in local time.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MoodCategory bands a mood level for display.
func (e *MoodEntry) MoodCategory() string {
	switch {
	case e.MoodLevel <= 2:
		return "Very Low"
	case e.MoodLevel <= 4:
		return "Low"
	case e.MoodLevel <= 6:
		return "Moderate"
	case e.MoodLevel <= 8:
		return "Good"
	default:
		return "Excellent"
	}
}
