package gamification

import (
	"errors"
	"sort"
	"time"

	"github.com/moodlog/server/models"
	"github.com/moodlog/server/repository"
)

// In-memory repositories backing the engine tests.

type fakeEntryRepo struct {
	entries []models.MoodEntry
}

func (f *fakeEntryRepo) ByUser(userID uint) ([]models.MoodEntry, error) {
	var out []models.MoodEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate.Before(out[j].EntryDate) })
	return out, nil
}

func (f *fakeEntryRepo) ByUserAndDateRange(userID uint, start, end time.Time) ([]models.MoodEntry, error) {
	all, _ := f.ByUser(userID)
	var out []models.MoodEntry
	for _, e := range all {
		if !e.EntryDate.Before(models.DateOnly(start)) && !e.EntryDate.After(models.DateOnly(end)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) ByUserAndDate(userID uint, date time.Time) (*models.MoodEntry, error) {
	for i := range f.entries {
		if f.entries[i].UserID == userID && f.entries[i].EntryDate.Equal(models.DateOnly(date)) {
			return &f.entries[i], nil
		}
	}
	return nil, nil
}

func (f *fakeEntryRepo) ByID(id uint) (*models.MoodEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			return &f.entries[i], nil
		}
	}
	return nil, nil
}

func (f *fakeEntryRepo) Recent(userID uint, limit int) ([]models.MoodEntry, error) {
	all, _ := f.ByUser(userID)
	sort.Slice(all, func(i, j int) bool { return all[i].EntryDate.After(all[j].EntryDate) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeEntryRepo) AverageForUser(userID uint, start, end *time.Time) (float64, error) {
	all, _ := f.ByUser(userID)
	sum, count := 0, 0
	for _, e := range all {
		if start != nil && e.EntryDate.Before(models.DateOnly(*start)) {
			continue
		}
		if end != nil && e.EntryDate.After(models.DateOnly(*end)) {
			continue
		}
		sum += e.MoodLevel
		count++
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

func (f *fakeEntryRepo) Create(entry *models.MoodEntry) error {
	entry.ID = uint(len(f.entries) + 1)
	entry.EntryDate = models.DateOnly(entry.EntryDate)
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeEntryRepo) Save(entry *models.MoodEntry) error {
	for i := range f.entries {
		if f.entries[i].ID == entry.ID {
			f.entries[i] = *entry
			return nil
		}
	}
	return errors.New("entry not found")
}

func (f *fakeEntryRepo) Delete(entry *models.MoodEntry) error {
	for i := range f.entries {
		if f.entries[i].ID == entry.ID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return errors.New("entry not found")
}

func (f *fakeEntryRepo) ReplaceTags(entry *models.MoodEntry, tags []models.MoodTag) error {
	for i := range f.entries {
		if f.entries[i].ID == entry.ID {
			f.entries[i].Tags = tags
			return nil
		}
	}
	return errors.New("entry not found")
}

type fakeStreakRepo struct {
	streaks []models.UserStreak
}

func (f *fakeStreakRepo) ByUser(userID uint) ([]models.UserStreak, error) {
	var out []models.UserStreak
	for _, s := range f.streaks {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStreakRepo) Upsert(streak *models.UserStreak) error {
	for i := range f.streaks {
		if f.streaks[i].UserID == streak.UserID && f.streaks[i].StreakType == streak.StreakType {
			streak.ID = f.streaks[i].ID
			f.streaks[i] = *streak
			return nil
		}
	}
	streak.ID = uint(len(f.streaks) + 1)
	f.streaks = append(f.streaks, *streak)
	return nil
}

type fakeAchievementRepo struct {
	catalog []models.Achievement
}

func (f *fakeAchievementRepo) All() ([]models.Achievement, error) {
	return f.catalog, nil
}

type fakeUserAchievementRepo struct {
	records []models.UserAchievement
}

func (f *fakeUserAchievementRepo) ByUser(userID uint) ([]models.UserAchievement, error) {
	var out []models.UserAchievement
	for _, ua := range f.records {
		if ua.UserID == userID {
			out = append(out, ua)
		}
	}
	return out, nil
}

func (f *fakeUserAchievementRepo) Upsert(ua *models.UserAchievement) error {
	for i := range f.records {
		if f.records[i].UserID == ua.UserID && f.records[i].AchievementID == ua.AchievementID {
			ua.ID = f.records[i].ID
			f.records[i] = *ua
			return nil
		}
	}
	ua.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *ua)
	return nil
}

type fakeStatsRepo struct {
	rows []models.UserStats
}

func (f *fakeStatsRepo) ByUser(userID uint) (*models.UserStats, error) {
	for i := range f.rows {
		if f.rows[i].UserID == userID {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakeStatsRepo) Upsert(stats *models.UserStats) error {
	for i := range f.rows {
		if f.rows[i].UserID == stats.UserID {
			if stats.ID == 0 {
				stats.ID = f.rows[i].ID
			}
			f.rows[i] = *stats
			return nil
		}
	}
	if stats.ID == 0 {
		stats.ID = uint(len(f.rows) + 1)
	}
	f.rows = append(f.rows, *stats)
	return nil
}

func newFakeStore() (*repository.Store, *fakeEntryRepo, *fakeStreakRepo, *fakeAchievementRepo, *fakeUserAchievementRepo, *fakeStatsRepo) {
	entries := &fakeEntryRepo{}
	streaks := &fakeStreakRepo{}
	catalog := &fakeAchievementRepo{}
	userAchievements := &fakeUserAchievementRepo{}
	stats := &fakeStatsRepo{}
	store := &repository.Store{
		Entries:          entries,
		Streaks:          streaks,
		Achievements:     catalog,
		UserAchievements: userAchievements,
		Stats:            stats,
	}
	return store, entries, streaks, catalog, userAchievements, stats
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.Local)
}

func entryOn(userID uint, date time.Time, level int, tags ...string) models.MoodEntry {
	e := models.MoodEntry{UserID: userID, MoodLevel: level, EntryDate: models.DateOnly(date)}
	for _, name := range tags {
		e.Tags = append(e.Tags, models.MoodTag{Name: name})
	}
	return e
}
