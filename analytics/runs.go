package analytics

import (
	"sort"
	"time"

	"github.com/moodlog/server/models"
)

// Run classifications.
const (
	RunPositive = "Positive"
	RunNegative = "Negative"
	RunNeutral  = "Neutral"
)

// Run is a stretch of consecutive calendar days whose entries share a mood
// classification.
type Run struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Type      string    `json:"type"`
	Count     int       `json:"count"`
}

// ClassifyLevel bands a mood level into a run classification.
func ClassifyLevel(level int) string {
	switch {
	case level >= 7:
		return RunPositive
	case level <= 4:
		return RunNegative
	default:
		return RunNeutral
	}
}

// Runs walks the entries in date order and collects stretches where the
// classification holds and the date advances by exactly one day. Stretches
// shorter than three days are noise and dropped. The ten longest survive,
// longest first.
func Runs(entries []models.MoodEntry) []Run {
	if len(entries) == 0 {
		return nil
	}
	ordered := sortedByDateAsc(entries)

	var runs []Run
	current := Run{
		StartDate: ordered[0].EntryDate,
		EndDate:   ordered[0].EntryDate,
		Type:      ClassifyLevel(ordered[0].MoodLevel),
		Count:     1,
	}

	for _, e := range ordered[1:] {
		class := ClassifyLevel(e.MoodLevel)
		next := models.DateOnly(current.EndDate).AddDate(0, 0, 1)
		if class == current.Type && models.DateOnly(e.EntryDate).Equal(next) {
			current.EndDate = e.EntryDate
			current.Count++
			continue
		}
		if current.Count >= 3 {
			runs = append(runs, current)
		}
		current = Run{StartDate: e.EntryDate, EndDate: e.EntryDate, Type: class, Count: 1}
	}
	if current.Count >= 3 {
		runs = append(runs, current)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Count > runs[j].Count })
	if len(runs) > 10 {
		runs = runs[:10]
	}
	return runs
}

// CurrentLoggingStreak counts back from today while each consecutive date
// has an entry. It is recomputed on read for display and is independent of
// the persisted streak counters.
func CurrentLoggingStreak(entries []models.MoodEntry, today time.Time) int {
	days := make(map[time.Time]bool, len(entries))
	for _, e := range entries {
		days[models.DateOnly(e.EntryDate)] = true
	}

	streak := 0
	for day := models.DateOnly(today); days[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}
