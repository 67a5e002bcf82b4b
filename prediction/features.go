// Package prediction forecasts a user's next mood level from their recent
// history. A weighted heuristic over windowed averages is the reference
// scorer; an optional externally trained model can supersede it but the
// heuristic always remains the fallback.
package prediction

import (
	"sort"
	"time"

	"github.com/moodlog/server/analytics"
	"github.com/moodlog/server/models"
)

// Tag names the feature extractor looks for in the last seven days. These
// match the seeded system tag catalog.
const (
	tagStressed = "Stressed"
	tagHappy    = "Happy"
	tagAnxious  = "Anxious"
	tagTired    = "Tired"
)

// Features is the fixed vector both the heuristic and a trained model
// score. Flags are 0/1 floats so the vector round-trips cleanly to an
// external scorer.
type Features struct {
	DayOfWeek          float64 `json:"day_of_week"`
	HourOfDay          float64 `json:"hour_of_day"`
	DaysSinceLastEntry float64 `json:"days_since_last_entry"`
	AverageMood7Days   float64 `json:"average_mood_7_days"`
	AverageMood30Days  float64 `json:"average_mood_30_days"`
	HasStressTag       float64 `json:"has_stress_tag"`
	HasHappyTag        float64 `json:"has_happy_tag"`
	HasAnxiousTag      float64 `json:"has_anxious_tag"`
	HasTiredTag        float64 `json:"has_tired_tag"`
	WeekendFactor      float64 `json:"weekend_factor"`
	MoodTrend          float64 `json:"mood_trend"`
	SeasonalFactor     float64 `json:"seasonal_factor"`
}

// ExtractFeatures builds the vector for "now" from the user's entries.
// Empty windows default the averages to a neutral 5.0 so the heuristic
// stays in range.
func ExtractFeatures(entries []models.MoodEntry, now time.Time) Features {
	today := models.DateOnly(now)
	cutoff7 := today.AddDate(0, 0, -7)
	cutoff30 := today.AddDate(0, 0, -30)

	var last7, last30 []models.MoodEntry
	for _, e := range entries {
		if !e.EntryDate.Before(cutoff30) {
			last30 = append(last30, e)
		}
		if !e.EntryDate.Before(cutoff7) {
			last7 = append(last7, e)
		}
	}

	features := Features{
		DayOfWeek:         float64(now.Weekday()),
		HourOfDay:         float64(now.Hour()),
		AverageMood7Days:  windowAverage(last7),
		AverageMood30Days: windowAverage(last30),
		MoodTrend:         analytics.TrendValue(last7),
		SeasonalFactor:    float64(now.Month()) / 12.0,
	}
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		features.WeekendFactor = 1
	}
	if last := latestEntryDate(entries); !last.IsZero() {
		features.DaysSinceLastEntry = now.Sub(last).Hours() / 24
	}

	for _, e := range last7 {
		for _, tag := range e.Tags {
			switch tag.Name {
			case tagStressed:
				features.HasStressTag = 1
			case tagHappy:
				features.HasHappyTag = 1
			case tagAnxious:
				features.HasAnxiousTag = 1
			case tagTired:
				features.HasTiredTag = 1
			}
		}
	}

	return features
}

func windowAverage(entries []models.MoodEntry) float64 {
	if len(entries) == 0 {
		return 5.0
	}
	sum := 0
	for _, e := range entries {
		sum += e.MoodLevel
	}
	return float64(sum) / float64(len(entries))
}

func latestEntryDate(entries []models.MoodEntry) time.Time {
	if len(entries) == 0 {
		return time.Time{}
	}
	dates := make([]time.Time, len(entries))
	for i, e := range entries {
		dates[i] = e.EntryDate
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates[0]
}
