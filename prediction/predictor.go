package prediction

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/moodlog/server/models"
	"github.com/moodlog/server/utils"
)

// Insight is a generated prediction with its confidence and the evidence
// behind it.
type Insight struct {
	Text           string    `json:"text"`
	Confidence     float64   `json:"confidence"`
	Category       string    `json:"category"`
	SupportingData []string  `json:"supporting_data,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Predictor turns a user's entry history into a next-mood insight. model
// may be nil, in which case the heuristic scores every request.
type Predictor struct {
	model Model
}

// NewPredictor creates a predictor with an optional trained model.
func NewPredictor(model Model) *Predictor {
	return &Predictor{model: model}
}

// Predict generates the insight for "now". Fewer than seven entries yields
// an encouragement message with zero confidence rather than an error.
func (p *Predictor) Predict(ctx context.Context, entries []models.MoodEntry, now time.Time) Insight {
	if len(entries) < 7 {
		return Insight{
			Text:        "Keep logging your mood for a few more days to get personalized predictions!",
			Confidence:  0,
			Category:    "prediction",
			GeneratedAt: now,
		}
	}

	features := ExtractFeatures(entries, now)
	predicted := p.score(ctx, features)
	return buildInsight(predicted, features, now)
}

// score asks the trained model first and falls back to the heuristic on
// any failure. Model errors degrade, never propagate.
func (p *Predictor) score(ctx context.Context, features Features) float64 {
	if p.model != nil {
		if predicted, err := p.model.Predict(ctx, features); err == nil {
			return clamp(predicted, 1, 10)
		} else if utils.Sugar != nil {
			utils.Sugar.Warnf("trained model unavailable, using heuristic: %v", err)
		}
	}
	return HeuristicScore(features)
}

// HeuristicScore is the reference prediction: a weighted blend of the 7-
// and 30-day averages nudged by weekend and tag signals, clamped to the
// valid mood range.
func HeuristicScore(features Features) float64 {
	score := features.AverageMood7Days*0.7 + features.AverageMood30Days*0.3
	if features.WeekendFactor > 0 {
		score += 0.5
	}
	if features.HasHappyTag > 0 {
		score += 0.5
	}
	if features.HasStressTag > 0 {
		score -= 1.0
	}
	return clamp(score, 1, 10)
}

// Confidence weights an insight by how much history backs it: base 0.5,
// plus having a 30-day average, a fresh last entry, and agreement between
// the short and long windows.
func Confidence(features Features) float64 {
	confidence := 0.5
	if features.AverageMood30Days > 0 {
		confidence += 0.2
	}
	if features.DaysSinceLastEntry < 2 {
		confidence += 0.1
	}
	if math.Abs(features.AverageMood7Days-features.AverageMood30Days) < 1 {
		confidence += 0.2
	}
	return clamp(confidence, 0, 1)
}

func buildInsight(predicted float64, features Features, now time.Time) Insight {
	rounded := math.Round(predicted*10) / 10

	text := fmt.Sprintf("Based on your patterns, you might feel %s today (predicted mood: %.1f/10).",
		moodDescription(rounded), rounded)
	if features.WeekendFactor > 0 {
		text += " Weekend vibes might boost your mood!"
	} else if features.DayOfWeek == float64(time.Monday) {
		text += " Monday blues might affect your mood."
	}
	if features.HasStressTag > 0 {
		text += " Consider stress management techniques."
	}

	return Insight{
		Text:       text,
		Confidence: Confidence(features),
		Category:   "prediction",
		SupportingData: []string{
			fmt.Sprintf("7-day average: %.1f", features.AverageMood7Days),
			fmt.Sprintf("30-day average: %.1f", features.AverageMood30Days),
		},
		GeneratedAt: now,
	}
}

func moodDescription(level float64) string {
	switch {
	case level >= 8:
		return "great"
	case level >= 6:
		return "good"
	case level >= 4:
		return "okay"
	case level >= 2:
		return "challenging"
	default:
		return "difficult"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
