// Package repository defines the persistence collaborators the engines
// depend on, plus the GORM implementations used in production. Engines only
// see the interfaces, so tests substitute in-memory fakes.
package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/moodlog/server/models"
)

// EntryRepository provides access to a user's mood entries.
type EntryRepository interface {
	ByUser(userID uint) ([]models.MoodEntry, error)
	ByUserAndDateRange(userID uint, start, end time.Time) ([]models.MoodEntry, error)
	ByUserAndDate(userID uint, date time.Time) (*models.MoodEntry, error)
	ByID(id uint) (*models.MoodEntry, error)
	Recent(userID uint, limit int) ([]models.MoodEntry, error)
	AverageForUser(userID uint, start, end *time.Time) (float64, error)
	Create(entry *models.MoodEntry) error
	Save(entry *models.MoodEntry) error
	Delete(entry *models.MoodEntry) error
	ReplaceTags(entry *models.MoodEntry, tags []models.MoodTag) error
}

// StreakRepository persists per-user streak counters.
type StreakRepository interface {
	ByUser(userID uint) ([]models.UserStreak, error)
	Upsert(streak *models.UserStreak) error
}

// AchievementRepository reads the global achievement catalog.
type AchievementRepository interface {
	All() ([]models.Achievement, error)
}

// UserAchievementRepository persists per-user achievement progress.
type UserAchievementRepository interface {
	ByUser(userID uint) ([]models.UserAchievement, error)
	Upsert(ua *models.UserAchievement) error
}

// StatsRepository persists the materialized per-user stats row.
type StatsRepository interface {
	ByUser(userID uint) (*models.UserStats, error)
	Upsert(stats *models.UserStats) error
}

// TagRepository manages the mood tag catalog.
type TagRepository interface {
	Active() ([]models.MoodTag, error)
	System() ([]models.MoodTag, error)
	UserDefined() ([]models.MoodTag, error)
	ByID(id uint) (*models.MoodTag, error)
	ByIDs(ids []uint) ([]models.MoodTag, error)
	ByName(name string) (*models.MoodTag, error)
	Create(tag *models.MoodTag) error
	Save(tag *models.MoodTag) error
	Delete(tag *models.MoodTag) error
}

// Store bundles every repository over one DB handle. A Store built from a
// transaction commits all writes atomically when the transaction does.
type Store struct {
	db *gorm.DB

	Entries          EntryRepository
	Streaks          StreakRepository
	Achievements     AchievementRepository
	UserAchievements UserAchievementRepository
	Stats            StatsRepository
	Tags             TagRepository
}

// NewStore builds a Store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:               db,
		Entries:          &entryRepo{db: db},
		Streaks:          &streakRepo{db: db},
		Achievements:     &achievementRepo{db: db},
		UserAchievements: &userAchievementRepo{db: db},
		Stats:            &statsRepo{db: db},
		Tags:             &tagRepo{db: db},
	}
}

// Transaction runs fn against a transaction-scoped Store. Everything written
// through it is committed together or not at all.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
