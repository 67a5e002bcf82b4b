// Package seed populates the system tag and achievement catalogs on first
// boot. Seeding is idempotent: a non-empty table is left untouched.
package seed

import (
	"gorm.io/gorm"

	"github.com/moodlog/server/models"
	"github.com/moodlog/server/utils"
)

// Run inserts the shipped catalogs when their tables are empty.
func Run(db *gorm.DB) error {
	if err := seedTags(db); err != nil {
		return err
	}
	return seedAchievements(db)
}

func seedTags(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MoodTag{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tags := []models.MoodTag{
		{Name: "Happy", Description: "Feeling joyful or content", Color: "#28a745", IsSystemTag: true, IsActive: true},
		{Name: "Stressed", Description: "Feeling under pressure", Color: "#dc3545", IsSystemTag: true, IsActive: true},
		{Name: "Anxious", Description: "Feeling worried or uneasy", Color: "#fd7e14", IsSystemTag: true, IsActive: true},
		{Name: "Tired", Description: "Low on energy", Color: "#6c757d", IsSystemTag: true, IsActive: true},
		{Name: "Energetic", Description: "Full of energy", Color: "#ffc107", IsSystemTag: true, IsActive: true},
		{Name: "Calm", Description: "Feeling peaceful and relaxed", Color: "#17a2b8", IsSystemTag: true, IsActive: true},
		{Name: "Social", Description: "Spent time with others", Color: "#6f42c1", IsSystemTag: true, IsActive: true},
		{Name: "Exercised", Description: "Got physical activity", Color: "#20c997", IsSystemTag: true, IsActive: true},
		{Name: "Slept Well", Description: "Had restful sleep", Color: "#007bff", IsSystemTag: true, IsActive: true},
		{Name: "Productive", Description: "Got things done", Color: "#e83e8c", IsSystemTag: true, IsActive: true},
	}
	if err := db.Create(&tags).Error; err != nil {
		return err
	}
	if utils.Sugar != nil {
		utils.Sugar.Infof("seeded %d system tags", len(tags))
	}
	return nil
}

func seedAchievements(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	achievements := []models.Achievement{
		{Name: "First Steps", Description: "Log your first mood entry", Category: "milestone", IconClass: "bi-pencil", BadgeColor: "#cd7f32", PointsValue: 10, CriteriaType: models.CriteriaCount, RequiredValue: 1},
		{Name: "Getting Started", Description: "Log 10 mood entries", Category: "milestone", IconClass: "bi-journal-check", BadgeColor: "#cd7f32", PointsValue: 25, CriteriaType: models.CriteriaCount, RequiredValue: 10},
		{Name: "Dedicated Logger", Description: "Log 50 mood entries", Category: "milestone", IconClass: "bi-journal-richtext", BadgeColor: "#c0c0c0", PointsValue: 75, CriteriaType: models.CriteriaCount, RequiredValue: 50},
		{Name: "Century Club", Description: "Log 100 mood entries", Category: "milestone", IconClass: "bi-trophy", BadgeColor: "#ffd700", PointsValue: 150, CriteriaType: models.CriteriaCount, RequiredValue: 100},
		{Name: "Active Week", Description: "Log 10 entries within 30 days", Category: "consistency", IconClass: "bi-calendar-week", BadgeColor: "#c0c0c0", PointsValue: 30, CriteriaType: models.CriteriaCount, RequiredValue: 10, TimeframeDays: 30},
		{Name: "Week Warrior", Description: "Keep a 7-day logging streak", Category: "consistency", IconClass: "bi-fire", BadgeColor: "#c0c0c0", PointsValue: 50, CriteriaType: models.CriteriaStreak, RequiredValue: 7},
		{Name: "Fortnight Focus", Description: "Keep a 14-day logging streak", Category: "consistency", IconClass: "bi-fire", BadgeColor: "#ffd700", PointsValue: 100, CriteriaType: models.CriteriaStreak, RequiredValue: 14},
		{Name: "Monthly Master", Description: "Keep a 30-day logging streak", Category: "consistency", IconClass: "bi-award", BadgeColor: "#ffd700", PointsValue: 200, CriteriaType: models.CriteriaStreak, RequiredValue: 30},
		{Name: "Sunny Outlook", Description: "Maintain an average mood of 7 over 30 days", Category: "self-care", IconClass: "bi-sun", BadgeColor: "#ffd700", PointsValue: 100, CriteriaType: models.CriteriaAverage, RequiredValue: 7, TimeframeDays: 30},
		{Name: "On The Rise", Description: "Improve your average mood between halves of your history", Category: "progress", IconClass: "bi-graph-up-arrow", BadgeColor: "#c0c0c0", PointsValue: 75, CriteriaType: models.CriteriaImprovement, RequiredValue: 10},
	}
	for i := range achievements {
		achievements[i].IsActive = true
	}
	if err := db.Create(&achievements).Error; err != nil {
		return err
	}
	if utils.Sugar != nil {
		utils.Sugar.Infof("seeded %d achievements", len(achievements))
	}
	return nil
}
