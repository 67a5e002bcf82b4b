package analytics

import (
	"testing"
	"time"

	"github.com/moodlog/server/models"
)

func tag(name string) models.MoodTag {
	return models.MoodTag{Name: name}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	if summary.TotalEntries != 0 || summary.AverageMood != 0 {
		t.Errorf("empty summary has totals: %+v", summary)
	}
	if summary.MoodTrend != TrendInsufficientData {
		t.Errorf("trend = %q, want %q", summary.MoodTrend, TrendInsufficientData)
	}
	if summary.BestDay != nil || summary.WorstDay != nil {
		t.Error("empty summary should have no best/worst day")
	}
	if len(summary.Insights) != 1 {
		t.Errorf("got %d insights, want the onboarding message", len(summary.Insights))
	}
}

func TestSummarize(t *testing.T) {
	start := day(2024, time.July, 1)
	entries := entriesWithLevels(start, 3, 5, 5, 8, 5, 6, 2)

	summary := Summarize(entries)

	if summary.TotalEntries != 7 {
		t.Errorf("TotalEntries = %d, want 7", summary.TotalEntries)
	}
	if want := 34.0 / 7.0; summary.AverageMood != want {
		t.Errorf("AverageMood = %v, want %v", summary.AverageMood, want)
	}
	if summary.BestDay == nil || summary.BestDay.MoodLevel != 8 {
		t.Errorf("BestDay = %+v, want level 8", summary.BestDay)
	}
	if summary.WorstDay == nil || summary.WorstDay.MoodLevel != 2 {
		t.Errorf("WorstDay = %+v, want level 2", summary.WorstDay)
	}
	if summary.MostCommonMood != 5 {
		t.Errorf("MostCommonMood = %d, want 5", summary.MostCommonMood)
	}
	if summary.MoodDistribution[5] != 3 || summary.MoodDistribution[2] != 1 {
		t.Errorf("distribution = %v", summary.MoodDistribution)
	}
	if len(summary.Insights) == 0 {
		t.Error("no insights generated")
	}
}

func TestSummarize_WeeklyAveragesOrdered(t *testing.T) {
	// Two Sunday-started weeks apart.
	week1 := entriesWithLevels(day(2024, time.July, 1), 4, 4, 4)
	week2 := entriesWithLevels(day(2024, time.July, 15), 8, 8)
	summary := Summarize(append(week2, week1...))

	if len(summary.WeeklyAverages) != 2 {
		t.Fatalf("got %d weeks, want 2", len(summary.WeeklyAverages))
	}
	first, second := summary.WeeklyAverages[0], summary.WeeklyAverages[1]
	if !first.WeekStart.Before(second.WeekStart) {
		t.Error("weeks not in chronological order")
	}
	if first.AverageMood != 4 || first.EntryCount != 3 {
		t.Errorf("first week = %+v", first)
	}
	if second.AverageMood != 8 || second.EntryCount != 2 {
		t.Errorf("second week = %+v", second)
	}
}

func TestSummarizeWeek(t *testing.T) {
	weekStart := day(2024, time.July, 7) // Sunday

	entries := entriesWithLevels(weekStart, 4, 5, 6, 7)
	// Tag two entries so a dominant tag emerges.
	entries[0].Tags = append(entries[0].Tags, tag("Tired"))
	entries[1].Tags = append(entries[1].Tags, tag("Tired"), tag("Calm"))
	// An entry outside the week must be excluded.
	outside := entriesWithLevels(weekStart.AddDate(0, 0, 10), 1)
	entries = append(entries, outside...)

	summary := SummarizeWeek(entries, weekStart)

	if summary.TotalEntries != 4 {
		t.Errorf("TotalEntries = %d, want 4", summary.TotalEntries)
	}
	if summary.AverageMood != 5.5 {
		t.Errorf("AverageMood = %v, want 5.5", summary.AverageMood)
	}
	if summary.MoodVariability <= 0 {
		t.Errorf("MoodVariability = %v, want > 0", summary.MoodVariability)
	}
	if len(summary.DominantTags) == 0 || summary.DominantTags[0] != "Tired" {
		t.Errorf("DominantTags = %v, want Tired first", summary.DominantTags)
	}
	if summary.MoodTrend != TrendImproving {
		t.Errorf("MoodTrend = %q, want %q", summary.MoodTrend, TrendImproving)
	}
}

func TestSummarizeWeek_Empty(t *testing.T) {
	weekStart := day(2024, time.July, 7)
	summary := SummarizeWeek(nil, weekStart)

	if summary.TotalEntries != 0 {
		t.Errorf("TotalEntries = %d, want 0", summary.TotalEntries)
	}
	if !summary.WeekStartDate.Equal(weekStart) || !summary.WeekEndDate.Equal(weekStart.AddDate(0, 0, 7)) {
		t.Errorf("week bounds = %v..%v", summary.WeekStartDate, summary.WeekEndDate)
	}
}
