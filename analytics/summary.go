package analytics

import (
	"sort"
	"time"

	"github.com/moodlog/server/models"
)

// Summary is the range-scoped analytics report backing the dashboard.
type Summary struct {
	AverageMood      float64           `json:"average_mood"`
	TotalEntries     int               `json:"total_entries"`
	MoodTrend        string            `json:"mood_trend"`
	BestDay          *models.MoodEntry `json:"best_day"`
	WorstDay         *models.MoodEntry `json:"worst_day"`
	MostCommonMood   int               `json:"most_common_mood"`
	MoodDistribution map[int]int       `json:"mood_distribution"`
	WeeklyAverages   []WeeklyAverage   `json:"weekly_averages"`
	Insights         []string          `json:"insights"`
}

// WeeklyAverage is one calendar week's aggregate within a summary.
type WeeklyAverage struct {
	WeekStart   time.Time `json:"week_start"`
	WeekEnd     time.Time `json:"week_end"`
	AverageMood float64   `json:"average_mood"`
	EntryCount  int       `json:"entry_count"`
}

// WeeklySummary reports one specific week for the weekly digest.
type WeeklySummary struct {
	WeekStartDate   time.Time `json:"week_start_date"`
	WeekEndDate     time.Time `json:"week_end_date"`
	AverageMood     float64   `json:"average_mood"`
	MoodVariability float64   `json:"mood_variability"`
	DominantTags    []string  `json:"dominant_tags"`
	TotalEntries    int       `json:"total_entries"`
	MoodTrend       string    `json:"mood_trend"`
}

// Summarize builds the full analytics report for a set of entries. An
// empty set yields a zero report with an onboarding insight rather than an
// error.
func Summarize(entries []models.MoodEntry) Summary {
	if len(entries) == 0 {
		return Summary{
			MoodTrend:        TrendInsufficientData,
			MoodDistribution: map[int]int{},
			Insights:         []string{"Start logging your mood to see insights!"},
		}
	}

	best, worst := bestAndWorst(entries)
	return Summary{
		AverageMood:      meanLevel(entries),
		TotalEntries:     len(entries),
		MoodTrend:        Trend(entries),
		BestDay:          best,
		WorstDay:         worst,
		MostCommonMood:   mostCommonMood(entries),
		MoodDistribution: distribution(entries),
		WeeklyAverages:   weeklyAverages(entries),
		Insights:         insights(entries),
	}
}

// SummarizeWeek aggregates the entries falling in [weekStart, weekStart+7d).
func SummarizeWeek(entries []models.MoodEntry, weekStart time.Time) WeeklySummary {
	start := models.DateOnly(weekStart)
	end := start.AddDate(0, 0, 7)

	var week []models.MoodEntry
	for _, e := range entries {
		if !e.EntryDate.Before(start) && e.EntryDate.Before(end) {
			week = append(week, e)
		}
	}

	summary := WeeklySummary{WeekStartDate: start, WeekEndDate: end, TotalEntries: len(week)}
	if len(week) == 0 {
		return summary
	}

	levels := make([]int, len(week))
	for i, e := range week {
		levels[i] = e.MoodLevel
	}
	summary.AverageMood = meanLevel(week)
	summary.MoodVariability = StdDev(levelsOf(levels))
	summary.DominantTags = dominantTags(week, 3)
	summary.MoodTrend = weekTrend(week)
	return summary
}

// weekTrend labels the in-week direction. A partial week defaults to
// stable; seven days of data is not required here, three entries are
// enough to call a direction.
func weekTrend(entries []models.MoodEntry) string {
	if len(entries) < 3 {
		return TrendStable
	}
	value := TrendValue(entries)
	switch {
	case value > 0.5:
		return TrendImproving
	case value < -0.5:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func bestAndWorst(entries []models.MoodEntry) (best, worst *models.MoodEntry) {
	b, w := 0, 0
	for i := range entries {
		if entries[i].MoodLevel > entries[b].MoodLevel {
			b = i
		}
		if entries[i].MoodLevel < entries[w].MoodLevel {
			w = i
		}
	}
	return &entries[b], &entries[w]
}

func mostCommonMood(entries []models.MoodEntry) int {
	counts := map[int]int{}
	for _, e := range entries {
		counts[e.MoodLevel]++
	}
	common, commonCount := 0, 0
	for level, count := range counts {
		if count > commonCount || (count == commonCount && level < common) {
			common, commonCount = level, count
		}
	}
	return common
}

func distribution(entries []models.MoodEntry) map[int]int {
	dist := map[int]int{}
	for _, e := range entries {
		dist[e.MoodLevel]++
	}
	return dist
}

// weeklyAverages buckets entries into Sunday-started calendar weeks,
// oldest first.
func weeklyAverages(entries []models.MoodEntry) []WeeklyAverage {
	buckets := map[time.Time][]models.MoodEntry{}
	for _, e := range entries {
		day := models.DateOnly(e.EntryDate)
		weekStart := day.AddDate(0, 0, -int(day.Weekday()))
		buckets[weekStart] = append(buckets[weekStart], e)
	}

	starts := make([]time.Time, 0, len(buckets))
	for start := range buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	averages := make([]WeeklyAverage, 0, len(starts))
	for _, start := range starts {
		week := buckets[start]
		first, last := week[0].EntryDate, week[0].EntryDate
		for _, e := range week[1:] {
			if e.EntryDate.Before(first) {
				first = e.EntryDate
			}
			if e.EntryDate.After(last) {
				last = e.EntryDate
			}
		}
		averages = append(averages, WeeklyAverage{
			WeekStart:   first,
			WeekEnd:     last,
			AverageMood: meanLevel(week),
			EntryCount:  len(week),
		})
	}
	return averages
}

func insights(entries []models.MoodEntry) []string {
	var out []string

	average := meanLevel(entries)
	switch {
	case average >= 7:
		out = append(out, "You're maintaining a positive mood overall! Keep up the great work.")
	case average >= 5:
		out = append(out, "Your mood is generally balanced. Consider what activities boost your happiness.")
	default:
		out = append(out, "Your mood has been lower recently. Consider reaching out for support if needed.")
	}

	levels := make([]int, len(entries))
	for i, e := range entries {
		levels[i] = e.MoodLevel
	}
	if Variance(levelsOf(levels)) < 2 {
		out = append(out, "Your mood has been quite consistent lately.")
	} else {
		out = append(out, "Your mood shows some variation - this is completely normal!")
	}

	if len(entries) >= 7 {
		out = append(out, "Great job staying consistent with your mood tracking!")
	}
	return out
}

// dominantTags returns the top-n tag names by frequency, ties resolved by
// first appearance.
func dominantTags(entries []models.MoodEntry, n int) []string {
	counts := map[string]int{}
	var order []string
	for _, e := range entries {
		for _, tag := range e.Tags {
			if _, seen := counts[tag.Name]; !seen {
				order = append(order, tag.Name)
			}
			counts[tag.Name]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > n {
		order = order[:n]
	}
	return order
}
