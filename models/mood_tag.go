package models

import "time"

// MoodTag is a label users attach to entries. System tags are shipped with
// the application and are deactivated instead of deleted.
type MoodTag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:200" json:"description"`
	Color       string    `gorm:"size:7;default:'#007bff'" json:"color"` // hex #RRGGBB
	IsSystemTag bool      `gorm:"default:false" json:"is_system_tag"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
