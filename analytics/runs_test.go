package analytics

import (
	"testing"
	"time"

	"github.com/moodlog/server/models"
)

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, RunNegative},
		{4, RunNegative},
		{5, RunNeutral},
		{6, RunNeutral},
		{7, RunPositive},
		{10, RunPositive},
	}
	for _, tt := range tests {
		if got := ClassifyLevel(tt.level); got != tt.want {
			t.Errorf("ClassifyLevel(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestRuns(t *testing.T) {
	start := day(2024, time.March, 1)

	// Five positive days, a neutral day, then four negative days.
	entries := entriesWithLevels(start, 8, 7, 9, 8, 7, 5, 3, 4, 2, 3)

	runs := Runs(entries)
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2 (neutral single-day stretch discarded)", len(runs))
	}

	if runs[0].Type != RunPositive || runs[0].Count != 5 {
		t.Errorf("longest run = %s/%d, want Positive/5", runs[0].Type, runs[0].Count)
	}
	if !runs[0].StartDate.Equal(start) || !runs[0].EndDate.Equal(start.AddDate(0, 0, 4)) {
		t.Errorf("longest run dates = %v..%v", runs[0].StartDate, runs[0].EndDate)
	}
	if runs[1].Type != RunNegative || runs[1].Count != 4 {
		t.Errorf("second run = %s/%d, want Negative/4", runs[1].Type, runs[1].Count)
	}
}

func TestRuns_DateGapBreaksRun(t *testing.T) {
	// Three positive entries, then a skipped day, then three more. Each
	// side forms its own run.
	entries := append(
		entriesWithLevels(day(2024, time.March, 1), 8, 8, 8),
		entriesWithLevels(day(2024, time.March, 5), 8, 8, 8)...)

	runs := Runs(entries)
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	for _, r := range runs {
		if r.Count != 3 {
			t.Errorf("run count = %d, want 3", r.Count)
		}
	}
}

func TestRuns_ShortStretchesDiscarded(t *testing.T) {
	entries := entriesWithLevels(day(2024, time.March, 1), 8, 8, 3, 3)
	if runs := Runs(entries); len(runs) != 0 {
		t.Errorf("got %d runs from two-day stretches, want 0", len(runs))
	}
}

func TestRuns_CapsAtTen(t *testing.T) {
	var entries []models.MoodEntry
	start := day(2024, time.January, 1)
	// Twelve alternating positive/negative stretches of three days each.
	for block := 0; block < 12; block++ {
		level := 8
		if block%2 == 1 {
			level = 3
		}
		blockStart := start.AddDate(0, 0, block*4) // one-day gap between blocks
		entries = append(entries, entriesWithLevels(blockStart, level, level, level)...)
	}

	runs := Runs(entries)
	if len(runs) != 10 {
		t.Errorf("got %d runs, want capped 10", len(runs))
	}
}

func TestCurrentLoggingStreak(t *testing.T) {
	today := day(2024, time.August, 20)

	tests := []struct {
		name    string
		entries []models.MoodEntry
		want    int
	}{
		{
			name: "no entries",
			want: 0,
		},
		{
			name:    "three days ending today",
			entries: entriesWithLevels(today.AddDate(0, 0, -2), 5, 6, 7),
			want:    3,
		},
		{
			name:    "streak broken yesterday",
			entries: entriesWithLevels(today.AddDate(0, 0, -4), 5, 6, 7),
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentLoggingStreak(tt.entries, today); got != tt.want {
				t.Errorf("CurrentLoggingStreak = %d, want %d", got, tt.want)
			}
		})
	}
}
