package services

import (
	"context"
	"fmt"
	"time"

	"moodbite/models"

	"go.uber.org/zap"
)

const (
	// InsightWindow is how long after eating a logged mood still counts
	// towards that food. The interval is closed at both ends.
	InsightWindow = 2 * time.Hour

	// mean intensity must be strictly above this to produce a message
	intensityThreshold = 3.0

	FallbackInsight = "Log more food and mood entries to get personalized insights!"
)

type Verdict string

const (
	VerdictBoost Verdict = "boost"
	VerdictAvoid Verdict = "avoid"
	VerdictNone  Verdict = "none"
)

var (
	upliftingMoods = map[models.MoodLabel]bool{
		models.MoodHappy: true, models.MoodExcited: true, models.MoodCalm: true,
	}
	distressingMoods = map[models.MoodLabel]bool{
		models.MoodSad: true, models.MoodAngry: true, models.MoodAnxious: true,
	}
)

// FoodMoodCorrelation summarises every mood observed within the window after
// eating one food.
type FoodMoodCorrelation struct {
	Food          string                   `json:"food"`
	Observations  int                      `json:"observations"`
	Counts        map[models.MoodLabel]int `json:"counts"`
	Dominant      models.MoodLabel         `json:"dominant_mood"`
	MeanIntensity float64                  `json:"mean_intensity"`
	Verdict       Verdict                  `json:"verdict"`
}

// Message renders the user-facing sentence for the correlation, or "" when
// the verdict carries no message.
func (c FoodMoodCorrelation) Message() string {
	switch c.Verdict {
	case VerdictBoost:
		return fmt.Sprintf("Eating %s seems to boost your mood!", c.Food)
	case VerdictAvoid:
		return fmt.Sprintf("You might want to avoid %s as it seems to negatively affect your mood.", c.Food)
	default:
		return ""
	}
}

type moodObservation struct {
	label     models.MoodLabel
	intensity int
}

// Correlate pairs every food with every mood logged 0..2h after it and
// returns per-food statistics in the order foods were first matched.
// Entries with a zero timestamp are ignored. Inputs are not modified.
func Correlate(foods []models.FoodEntry, moods []models.MoodEntry) []FoodMoodCorrelation {
	var order []string
	observed := make(map[string][]moodObservation)

	for _, f := range foods {
		if f.Timestamp.IsZero() {
			continue
		}
		for _, m := range moods {
			if m.Timestamp.IsZero() {
				continue
			}
			lag := m.Timestamp.Sub(f.Timestamp)
			if lag < 0 || lag > InsightWindow {
				continue
			}
			if _, seen := observed[f.FoodName]; !seen {
				order = append(order, f.FoodName)
			}
			observed[f.FoodName] = append(observed[f.FoodName], moodObservation{m.Mood, m.Intensity})
		}
	}

	out := make([]FoodMoodCorrelation, 0, len(order))
	for _, food := range order {
		out = append(out, summarise(food, observed[food]))
	}
	return out
}

func summarise(food string, obs []moodObservation) FoodMoodCorrelation {
	counts := make(map[models.MoodLabel]int)
	total := 0
	for _, o := range obs {
		counts[o.label]++
		total += o.intensity
	}

	c := FoodMoodCorrelation{
		Food:          food,
		Observations:  len(obs),
		Counts:        counts,
		Dominant:      dominantMood(counts),
		MeanIntensity: float64(total) / float64(len(obs)),
		Verdict:       VerdictNone,
	}
	if c.MeanIntensity > intensityThreshold {
		switch {
		case upliftingMoods[c.Dominant]:
			c.Verdict = VerdictBoost
		case distressingMoods[c.Dominant]:
			c.Verdict = VerdictAvoid
		}
	}
	return c
}

// dominantMood picks the most frequent label; ties go to the lexically
// smallest label so the result does not depend on map iteration order.
func dominantMood(counts map[models.MoodLabel]int) models.MoodLabel {
	var best models.MoodLabel
	bestCount := 0
	for label, n := range counts {
		if n > bestCount || (n == bestCount && label < best) {
			best, bestCount = label, n
		}
	}
	return best
}

// GenerateInsights turns the correlations into messages. It always returns
// at least one string.
func GenerateInsights(foods []models.FoodEntry, moods []models.MoodEntry) []string {
	return insightMessages(Correlate(foods, moods))
}

func insightMessages(correlations []FoodMoodCorrelation) []string {
	var insights []string
	for _, c := range correlations {
		if msg := c.Message(); msg != "" {
			insights = append(insights, msg)
		}
	}
	if len(insights) == 0 {
		return []string{FallbackInsight}
	}
	return insights
}

// RecordSource is the read side of the record store the engine needs.
type RecordSource interface {
	RecentFoodEntries(ctx context.Context, userID uint, limit int) ([]models.FoodEntry, error)
	RecentMoodEntries(ctx context.Context, userID uint, limit int) ([]models.MoodEntry, error)
}

type InsightService struct {
	src     RecordSource
	limit   int
	log     *zap.Logger
	metrics *Metrics
}

func NewInsightService(src RecordSource, limit int, log *zap.Logger, metrics *Metrics) *InsightService {
	return &InsightService{src: src, limit: limit, log: log.Named("insights"), metrics: metrics}
}

// ForUser computes insights over the user's most recent entries. Store
// failures are returned as errors and never turned into the fallback message.
func (s *InsightService) ForUser(ctx context.Context, userID uint) ([]string, error) {
	foods, moods, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	correlations := Correlate(foods, moods)
	insights := insightMessages(correlations)
	s.metrics.observeInsights(correlations, insights)
	s.log.Debug("insights generated",
		zap.Uint("user_id", userID),
		zap.Int("foods", len(foods)),
		zap.Int("moods", len(moods)),
		zap.Int("insights", len(insights)))
	return insights, nil
}

func (s *InsightService) DetailsForUser(ctx context.Context, userID uint) ([]FoodMoodCorrelation, error) {
	foods, moods, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Correlate(foods, moods), nil
}

func (s *InsightService) snapshot(ctx context.Context, userID uint) ([]models.FoodEntry, []models.MoodEntry, error) {
	foods, err := s.src.RecentFoodEntries(ctx, userID, s.limit)
	if err != nil {
		return nil, nil, fmt.Errorf("load food entries: %w", err)
	}
	moods, err := s.src.RecentMoodEntries(ctx, userID, s.limit)
	if err != nil {
		return nil, nil, fmt.Errorf("load mood entries: %w", err)
	}
	return foods, moods, nil
}
