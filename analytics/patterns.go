package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/moodlog/server/models"
)

// Pattern is an aggregate over one grouping dimension (day of week or
// calendar month).
type Pattern struct {
	PatternType string  `json:"pattern_type"`
	PatternName string  `json:"pattern_name"`
	AverageMood float64 `json:"average_mood"`
	EntryCount  int     `json:"entry_count"`
}

// Detection types and defaults.
const (
	PatternDayOfWeek = "day_of_week"
	PatternMonth     = "month"

	DetectionWeeklyCycle     = "weekly_cycle"
	DetectionPositiveTrigger = "positive_trigger"
	DetectionNegativeTrigger = "negative_trigger"

	// defaultDayMood stands in for a weekday with no entries when
	// comparing weekend and Monday means.
	defaultDayMood = 5.0
)

// Detection is a discovered behavioral pattern with a confidence weight.
type Detection struct {
	PatternType    string    `json:"pattern_type"`
	Description    string    `json:"description"`
	Confidence     float64   `json:"confidence"`
	Recommendation string    `json:"recommendation"`
	DetectedAt     time.Time `json:"detected_at"`
}

// Patterns groups entries by day of week and by calendar month, each group
// reporting its mean mood and entry count, sorted mean-descending within
// each grouping.
func Patterns(entries []models.MoodEntry) []Pattern {
	byDay := map[time.Weekday][]int{}
	byMonth := map[time.Month][]int{}
	for _, e := range entries {
		byDay[e.EntryDate.Weekday()] = append(byDay[e.EntryDate.Weekday()], e.MoodLevel)
		byMonth[e.EntryDate.Month()] = append(byMonth[e.EntryDate.Month()], e.MoodLevel)
	}

	var patterns []Pattern
	for day := time.Sunday; day <= time.Saturday; day++ {
		if levels := byDay[day]; len(levels) > 0 {
			patterns = append(patterns, Pattern{
				PatternType: PatternDayOfWeek,
				PatternName: day.String(),
				AverageMood: meanInts(levels),
				EntryCount:  len(levels),
			})
		}
	}
	sortPatternsByMood(patterns)

	monthStart := len(patterns)
	for month := time.January; month <= time.December; month++ {
		if levels := byMonth[month]; len(levels) > 0 {
			patterns = append(patterns, Pattern{
				PatternType: PatternMonth,
				PatternName: month.String(),
				AverageMood: meanInts(levels),
				EntryCount:  len(levels),
			})
		}
	}
	sortPatternsByMood(patterns[monthStart:])

	return patterns
}

// DetectWeeklyCycle reports a weekend-vs-Monday mood swing. It needs
// entries on at least five distinct weekdays; a weekday without entries
// contributes the neutral default when averaging.
func DetectWeeklyCycle(entries []models.MoodEntry, now time.Time) *Detection {
	byDay := map[time.Weekday][]int{}
	for _, e := range entries {
		byDay[e.EntryDate.Weekday()] = append(byDay[e.EntryDate.Weekday()], e.MoodLevel)
	}
	if len(byDay) < 5 {
		return nil
	}

	monday := dayMeanOrDefault(byDay, time.Monday)
	weekend := (dayMeanOrDefault(byDay, time.Saturday) + dayMeanOrDefault(byDay, time.Sunday)) / 2

	if weekend-monday <= 1.5 {
		return nil
	}
	return &Detection{
		PatternType:    DetectionWeeklyCycle,
		Description:    "Your mood tends to be higher on weekends and lower on Mondays",
		Confidence:     0.8,
		Recommendation: "Consider planning enjoyable activities for Monday evenings to ease the transition",
		DetectedAt:     now,
	}
}

// DetectTagTriggers compares each tag's mean mood against the overall mean
// and reports tags whose presence moves the average by more than one point.
// Tags on fewer than three entries are skipped.
func DetectTagTriggers(entries []models.MoodEntry, now time.Time) []Detection {
	if len(entries) == 0 {
		return nil
	}
	overall := meanLevel(entries)

	tagLevels := map[string][]int{}
	var order []string
	for _, e := range entries {
		for _, tag := range e.Tags {
			if _, seen := tagLevels[tag.Name]; !seen {
				order = append(order, tag.Name)
			}
			tagLevels[tag.Name] = append(tagLevels[tag.Name], e.MoodLevel)
		}
	}

	var detections []Detection
	for _, name := range order {
		levels := tagLevels[name]
		if len(levels) < 3 {
			continue
		}
		diff := meanInts(levels) - overall
		if math.Abs(diff) <= 1.0 {
			continue
		}

		detection := Detection{
			Confidence: math.Min(0.9, math.Abs(diff)/3.0),
			DetectedAt: now,
		}
		if diff > 0 {
			detection.PatternType = DetectionPositiveTrigger
			detection.Description = fmt.Sprintf("The '%s' tag is associated with higher mood levels", name)
			detection.Recommendation = fmt.Sprintf("Try to incorporate more activities that make you feel '%s'", name)
		} else {
			detection.PatternType = DetectionNegativeTrigger
			detection.Description = fmt.Sprintf("The '%s' tag is associated with lower mood levels", name)
			detection.Recommendation = fmt.Sprintf("Consider strategies to manage situations that make you feel '%s'", name)
		}
		detections = append(detections, detection)
	}
	return detections
}

func dayMeanOrDefault(byDay map[time.Weekday][]int, day time.Weekday) float64 {
	levels := byDay[day]
	if len(levels) == 0 {
		return defaultDayMood
	}
	return meanInts(levels)
}

func meanInts(levels []int) float64 {
	if len(levels) == 0 {
		return 0
	}
	sum := 0
	for _, l := range levels {
		sum += l
	}
	return float64(sum) / float64(len(levels))
}

func sortPatternsByMood(patterns []Pattern) {
	sort.SliceStable(patterns, func(i, j int) bool { return patterns[i].AverageMood > patterns[j].AverageMood })
}
