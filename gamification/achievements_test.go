package gamification

import (
	"errors"
	"testing"
	"time"

	"github.com/moodlog/server/models"
)

func TestAchievementEngine_CountWithinTimeframe(t *testing.T) {
	store, entries, _, catalog, userAchievements, _ := newFakeStore()

	catalog.catalog = []models.Achievement{{
		ID:            1,
		Name:          "Active Month",
		PointsValue:   30,
		CriteriaType:  models.CriteriaCount,
		RequiredValue: 10,
		TimeframeDays: 30,
		IsActive:      true,
	}}

	now := day(2024, time.April, 20)
	for i := 0; i < 12; i++ {
		entries.entries = append(entries.entries, entryOn(1, now.AddDate(0, 0, -i), 6))
	}

	engine := NewAchievementEngine(store)
	updated, events, err := engine.Evaluate(1, now)
	if err != nil {
		t.Fatal(err)
	}

	if len(updated) != 1 {
		t.Fatalf("got %d updated records, want 1", len(updated))
	}
	record := updated[0]
	if record.Progress != 12 {
		t.Errorf("progress = %d, want 12", record.Progress)
	}
	if !record.IsCompleted {
		t.Error("achievement not completed")
	}
	if record.EarnedAt == nil || !record.EarnedAt.Equal(now) {
		t.Errorf("earnedAt = %v, want %v", record.EarnedAt, now)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Type != EventAchievementEarned || events[0].Name != "Active Month" || events[0].Value != 30 {
		t.Errorf("unexpected event %+v", events[0])
	}

	// Re-running with unchanged inputs must change nothing.
	updated, events, err = engine.Evaluate(1, now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(updated) != 0 || len(events) != 0 {
		t.Errorf("re-evaluation produced %d updates and %d events, want none", len(updated), len(events))
	}

	persisted, _ := userAchievements.ByUser(1)
	if len(persisted) != 1 || !persisted[0].EarnedAt.Equal(now) {
		t.Error("completion record mutated by re-evaluation")
	}
}

func TestAchievementEngine_StreakCriteria(t *testing.T) {
	store, _, streaks, catalog, _, _ := newFakeStore()

	catalog.catalog = []models.Achievement{{
		ID:            1,
		Name:          "Week Warrior",
		CriteriaType:  models.CriteriaStreak,
		RequiredValue: 7,
		IsActive:      true,
	}}
	streaks.streaks = []models.UserStreak{{
		UserID:        1,
		StreakType:    models.StreakTypeDailyLogging,
		CurrentStreak: 4,
		LongestStreak: 9,
	}}

	engine := NewAchievementEngine(store)
	updated, events, err := engine.Evaluate(1, day(2024, time.April, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Fatalf("incomplete streak emitted %d events", len(events))
	}
	if len(updated) != 1 || updated[0].Progress != 4 || updated[0].IsCompleted {
		t.Errorf("got %+v, want progress 4 incomplete", updated)
	}
}

func TestAchievementEngine_CorruptStreakSurfaces(t *testing.T) {
	store, _, streaks, catalog, _, _ := newFakeStore()

	catalog.catalog = []models.Achievement{{
		ID:            1,
		CriteriaType:  models.CriteriaStreak,
		RequiredValue: 7,
		IsActive:      true,
	}}
	streaks.streaks = []models.UserStreak{{
		UserID:        1,
		StreakType:    models.StreakTypeDailyLogging,
		CurrentStreak: 9,
		LongestStreak: 3,
	}}

	engine := NewAchievementEngine(store)
	_, _, err := engine.Evaluate(1, day(2024, time.April, 1))
	if !errors.Is(err, ErrCorruptStreak) {
		t.Fatalf("err = %v, want ErrCorruptStreak", err)
	}

	// The corrupt record must not be repaired.
	persisted, _ := streaks.ByUser(1)
	if persisted[0].CurrentStreak != 9 || persisted[0].LongestStreak != 3 {
		t.Error("corrupt streak record was modified")
	}
}

func TestAchievementEngine_UnknownCriteriaSkipsOnlyThatAchievement(t *testing.T) {
	store, entries, _, catalog, _, _ := newFakeStore()

	catalog.catalog = []models.Achievement{
		{ID: 1, Name: "Broken", CriteriaType: "mystery", RequiredValue: 1, IsActive: true},
		{ID: 2, Name: "First Steps", CriteriaType: models.CriteriaCount, RequiredValue: 1, IsActive: true},
	}
	entries.entries = []models.MoodEntry{entryOn(1, day(2024, time.April, 1), 5)}

	engine := NewAchievementEngine(store)
	updated, events, err := engine.Evaluate(1, day(2024, time.April, 2))
	if err != nil {
		t.Fatal(err)
	}
	if len(updated) != 1 || updated[0].AchievementID != 2 {
		t.Fatalf("got %+v, want only achievement 2 evaluated", updated)
	}
	if len(events) != 1 {
		t.Errorf("got %d events, want 1", len(events))
	}
}

func TestAchievementEngine_AverageCriteria(t *testing.T) {
	store, entries, _, catalog, _, _ := newFakeStore()

	catalog.catalog = []models.Achievement{{
		ID:            1,
		Name:          "Sunny Outlook",
		CriteriaType:  models.CriteriaAverage,
		RequiredValue: 7,
		TimeframeDays: 30,
		IsActive:      true,
	}}

	now := day(2024, time.April, 30)
	// Mean 7.4 rounds to 7.
	for i, level := range []int{7, 8, 7, 8, 7} {
		entries.entries = append(entries.entries, entryOn(1, now.AddDate(0, 0, -i), level))
	}

	engine := NewAchievementEngine(store)
	updated, _, err := engine.Evaluate(1, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(updated) != 1 || updated[0].Progress != 7 || !updated[0].IsCompleted {
		t.Errorf("got %+v, want progress 7 completed", updated)
	}
}

func TestImprovementProgress(t *testing.T) {
	now := day(2024, time.April, 1)

	tests := []struct {
		name   string
		levels []int
		want   int
	}{
		{
			name:   "fewer than 14 entries",
			levels: []int{3, 3, 3, 3, 3, 3, 3, 8, 8, 8, 8, 8, 8},
			want:   0,
		},
		{
			name:   "low first half high second half",
			levels: []int{3, 3, 4, 4, 3, 4, 3, 7, 8, 7, 8, 9, 8, 7},
			want:   43, // second half mean 7.714 - first half mean 3.428 = 4.285, x10 rounded
		},
		{
			name:   "declining floors at zero",
			levels: []int{8, 8, 8, 8, 8, 8, 8, 3, 3, 3, 3, 3, 3, 3},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list []models.MoodEntry
			for i, level := range tt.levels {
				list = append(list, entryOn(1, now.AddDate(0, 0, i), level))
			}
			if got := improvementProgress(list); got != tt.want {
				t.Errorf("improvementProgress = %d, want %d", got, tt.want)
			}
		})
	}
}
