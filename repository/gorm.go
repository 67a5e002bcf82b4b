package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/moodlog/server/models"
)

type entryRepo struct {
	db *gorm.DB
}

func (r *entryRepo) ByUser(userID uint) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	err := r.db.Preload("Tags").Where("user_id = ?", userID).Order("entry_date ASC").Find(&entries).Error
	return entries, err
}

func (r *entryRepo) ByUserAndDateRange(userID uint, start, end time.Time) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	err := r.db.Preload("Tags").
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, models.DateOnly(start), models.DateOnly(end)).
		Order("entry_date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *entryRepo) ByUserAndDate(userID uint, date time.Time) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	err := r.db.Preload("Tags").
		Where("user_id = ? AND entry_date = ?", userID, models.DateOnly(date)).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepo) ByID(id uint) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	err := r.db.Preload("Tags").First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepo) Recent(userID uint, limit int) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	err := r.db.Preload("Tags").Where("user_id = ?", userID).
		Order("entry_date DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *entryRepo) AverageForUser(userID uint, start, end *time.Time) (float64, error) {
	query := r.db.Model(&models.MoodEntry{}).Where("user_id = ?", userID)
	if start != nil {
		query = query.Where("entry_date >= ?", models.DateOnly(*start))
	}
	if end != nil {
		query = query.Where("entry_date <= ?", models.DateOnly(*end))
	}
	var avg float64
	err := query.Select("COALESCE(AVG(mood_level),0)").Scan(&avg).Error
	return avg, err
}

func (r *entryRepo) Create(entry *models.MoodEntry) error {
	return r.db.Create(entry).Error
}

func (r *entryRepo) Save(entry *models.MoodEntry) error {
	return r.db.Save(entry).Error
}

func (r *entryRepo) Delete(entry *models.MoodEntry) error {
	if err := r.db.Model(entry).Association("Tags").Clear(); err != nil {
		return err
	}
	return r.db.Delete(entry).Error
}

func (r *entryRepo) ReplaceTags(entry *models.MoodEntry, tags []models.MoodTag) error {
	return r.db.Model(entry).Association("Tags").Replace(tags)
}

type streakRepo struct {
	db *gorm.DB
}

func (r *streakRepo) ByUser(userID uint) ([]models.UserStreak, error) {
	var streaks []models.UserStreak
	err := r.db.Where("user_id = ?", userID).Find(&streaks).Error
	return streaks, err
}

func (r *streakRepo) Upsert(streak *models.UserStreak) error {
	return r.db.Save(streak).Error
}

type achievementRepo struct {
	db *gorm.DB
}

func (r *achievementRepo) All() ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&achievements).Error
	return achievements, err
}

type userAchievementRepo struct {
	db *gorm.DB
}

func (r *userAchievementRepo) ByUser(userID uint) ([]models.UserAchievement, error) {
	var uas []models.UserAchievement
	err := r.db.Preload("Achievement").Where("user_id = ?", userID).Find(&uas).Error
	return uas, err
}

func (r *userAchievementRepo) Upsert(ua *models.UserAchievement) error {
	return r.db.Save(ua).Error
}

type statsRepo struct {
	db *gorm.DB
}

func (r *statsRepo) ByUser(userID uint) (*models.UserStats, error) {
	var stats models.UserStats
	err := r.db.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepo) Upsert(stats *models.UserStats) error {
	return r.db.Save(stats).Error
}

type tagRepo struct {
	db *gorm.DB
}

func (r *tagRepo) Active() ([]models.MoodTag, error) {
	var tags []models.MoodTag
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *tagRepo) System() ([]models.MoodTag, error) {
	var tags []models.MoodTag
	err := r.db.Where("is_system_tag = ? AND is_active = ?", true, true).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *tagRepo) UserDefined() ([]models.MoodTag, error) {
	var tags []models.MoodTag
	err := r.db.Where("is_system_tag = ? AND is_active = ?", false, true).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *tagRepo) ByID(id uint) (*models.MoodTag, error) {
	var tag models.MoodTag
	err := r.db.First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepo) ByIDs(ids []uint) ([]models.MoodTag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.MoodTag
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *tagRepo) ByName(name string) (*models.MoodTag, error) {
	var tag models.MoodTag
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepo) Create(tag *models.MoodTag) error {
	return r.db.Create(tag).Error
}

func (r *tagRepo) Save(tag *models.MoodTag) error {
	return r.db.Save(tag).Error
}

func (r *tagRepo) Delete(tag *models.MoodTag) error {
	return r.db.Delete(tag).Error
}
