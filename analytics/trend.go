// Package analytics derives read-only insight from a user's mood entries:
// trend labels, consecutive-day mood runs, day-of-week and monthly
// patterns, tag correlations, and variability measures. Every function is
// pure; callers load entries and pass them in.
package analytics

import (
	"sort"

	"github.com/moodlog/server/models"
)

// Trend labels.
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient data"
)

// Trend compares the most recent 7 entries against the preceding 7 and
// labels the shift. Entries older than that window are ignored. Fewer than
// 7 preceding entries means there is not enough history to call a
// direction.
func Trend(entries []models.MoodEntry) string {
	if len(entries) < 14 {
		return TrendInsufficientData
	}

	ordered := sortedByDateDesc(entries)
	recent := ordered[:7]
	older := ordered[7:14]

	delta := meanLevel(recent) - meanLevel(older)
	switch {
	case delta > 0.5:
		return TrendImproving
	case delta < -0.5:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// TrendValue is the raw signal behind Trend: the second-half average minus
// the first-half average of the given window, 0 when fewer than two
// entries exist. Feeds the prediction feature vector.
func TrendValue(entries []models.MoodEntry) float64 {
	if len(entries) < 2 {
		return 0
	}
	ordered := sortedByDateAsc(entries)
	mid := len(ordered) / 2
	return meanLevel(ordered[mid:]) - meanLevel(ordered[:mid])
}

func sortedByDateAsc(entries []models.MoodEntry) []models.MoodEntry {
	ordered := make([]models.MoodEntry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].EntryDate.Before(ordered[j].EntryDate) })
	return ordered
}

func sortedByDateDesc(entries []models.MoodEntry) []models.MoodEntry {
	ordered := make([]models.MoodEntry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].EntryDate.After(ordered[j].EntryDate) })
	return ordered
}

func meanLevel(entries []models.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.MoodLevel
	}
	return float64(sum) / float64(len(entries))
}
