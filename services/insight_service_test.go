package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"moodbite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var t0 = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func food(name string, at time.Time) models.FoodEntry {
	return models.FoodEntry{FoodName: name, Timestamp: at}
}

func mood(label models.MoodLabel, intensity int, at time.Time) models.MoodEntry {
	return models.MoodEntry{Mood: label, Intensity: intensity, Timestamp: at}
}

func TestGenerateInsights_EmptyInputReturnsFallback(t *testing.T) {
	assert.Equal(t, []string{FallbackInsight}, GenerateInsights(nil, nil))
	assert.Equal(t, []string{FallbackInsight}, GenerateInsights([]models.FoodEntry{food("Pizza", t0)}, nil))
	assert.Equal(t, []string{FallbackInsight}, GenerateInsights(nil, []models.MoodEntry{mood(models.MoodHappy, 5, t0)}))
}

func TestGenerateInsights_WindowBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		moodAt  time.Time
		matched bool
	}{
		{"same instant", t0, true},
		{"exactly two hours later", t0.Add(2 * time.Hour), true},
		{"one second past the window", t0.Add(2*time.Hour + time.Second), false},
		{"one second before eating", t0.Add(-time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateInsights(
				[]models.FoodEntry{food("Pizza", t0)},
				[]models.MoodEntry{mood(models.MoodHappy, 5, tt.moodAt)},
			)
			if tt.matched {
				assert.Equal(t, []string{"Eating Pizza seems to boost your mood!"}, got)
			} else {
				assert.Equal(t, []string{FallbackInsight}, got)
			}
		})
	}
}

func TestGenerateInsights_PositiveCorrelation(t *testing.T) {
	foods := []models.FoodEntry{food("Pizza", t0)}
	moods := []models.MoodEntry{
		mood(models.MoodHappy, 5, t0.Add(10*time.Minute)),
		mood(models.MoodHappy, 4, t0.Add(30*time.Minute)),
		mood(models.MoodSad, 2, t0.Add(90*time.Minute)),
	}

	assert.Equal(t, []string{"Eating Pizza seems to boost your mood!"}, GenerateInsights(foods, moods))

	c := Correlate(foods, moods)
	require.Len(t, c, 1)
	assert.Equal(t, 3, c[0].Observations)
	assert.Equal(t, models.MoodHappy, c[0].Dominant)
	assert.InDelta(t, 11.0/3.0, c[0].MeanIntensity, 1e-9)
	assert.Equal(t, VerdictBoost, c[0].Verdict)
	assert.Equal(t, map[models.MoodLabel]int{models.MoodHappy: 2, models.MoodSad: 1}, c[0].Counts)
}

func TestGenerateInsights_NegativeCorrelation(t *testing.T) {
	foods := []models.FoodEntry{food("Coffee", t0)}
	moods := []models.MoodEntry{
		mood(models.MoodAnxious, 4, t0.Add(20*time.Minute)),
		mood(models.MoodAnxious, 5, t0.Add(time.Hour)),
	}
	assert.Equal(t,
		[]string{"You might want to avoid Coffee as it seems to negatively affect your mood."},
		GenerateInsights(foods, moods))
}

func TestGenerateInsights_NeutralDominantFallsBack(t *testing.T) {
	got := GenerateInsights(
		[]models.FoodEntry{food("Salad", t0)},
		[]models.MoodEntry{mood(models.MoodNeutral, 3, t0.Add(time.Hour))},
	)
	assert.Equal(t, []string{FallbackInsight}, got)
}

func TestGenerateInsights_IntensityThresholdIsStrict(t *testing.T) {
	got := GenerateInsights(
		[]models.FoodEntry{food("Toast", t0)},
		[]models.MoodEntry{
			mood(models.MoodHappy, 3, t0.Add(time.Minute)),
			mood(models.MoodHappy, 3, t0.Add(2*time.Minute)),
		},
	)
	assert.Equal(t, []string{FallbackInsight}, got)
}

func TestGenerateInsights_TieGoesToLowestLabel(t *testing.T) {
	// angry < happy lexically, so the tie resolves to a distressing mood
	moods := []models.MoodEntry{
		mood(models.MoodHappy, 5, t0.Add(time.Minute)),
		mood(models.MoodAngry, 5, t0.Add(2*time.Minute)),
	}
	for i := 0; i < 20; i++ {
		got := GenerateInsights([]models.FoodEntry{food("Chili", t0)}, moods)
		require.Equal(t, []string{"You might want to avoid Chili as it seems to negatively affect your mood."}, got)
	}
}

func TestGenerateInsights_OrderFollowsFoodIteration(t *testing.T) {
	foods := []models.FoodEntry{
		food("Coffee", t0.Add(3*time.Hour)),
		food("Pizza", t0),
		food("Coffee", t0.Add(4*time.Hour)),
	}
	moods := []models.MoodEntry{
		mood(models.MoodHappy, 5, t0.Add(time.Hour)),
		mood(models.MoodAnxious, 5, t0.Add(3*time.Hour+30*time.Minute)),
		mood(models.MoodAnxious, 4, t0.Add(5*time.Hour)),
	}

	got := GenerateInsights(foods, moods)
	assert.Equal(t, []string{
		"You might want to avoid Coffee as it seems to negatively affect your mood.",
		"Eating Pizza seems to boost your mood!",
	}, got)

	c := Correlate(foods, moods)
	require.Len(t, c, 2)
	// the 5h mood lands in both Coffee windows
	assert.Equal(t, 3, c[0].Observations)
}

func TestGenerateInsights_SkipsZeroTimestamps(t *testing.T) {
	foods := []models.FoodEntry{food("Ghost", time.Time{}), food("Pizza", t0)}
	moods := []models.MoodEntry{
		mood(models.MoodSad, 5, time.Time{}),
		mood(models.MoodHappy, 5, t0.Add(time.Hour)),
	}
	assert.Equal(t, []string{"Eating Pizza seems to boost your mood!"}, GenerateInsights(foods, moods))
}

func TestGenerateInsights_DoesNotMutateInputs(t *testing.T) {
	foods := []models.FoodEntry{food("B", t0.Add(time.Hour)), food("A", t0)}
	moods := []models.MoodEntry{mood(models.MoodCalm, 5, t0.Add(90*time.Minute))}
	foodsCopy := append([]models.FoodEntry(nil), foods...)
	moodsCopy := append([]models.MoodEntry(nil), moods...)

	first := GenerateInsights(foods, moods)
	second := GenerateInsights(foods, moods)

	assert.Equal(t, foodsCopy, foods)
	assert.Equal(t, moodsCopy, moods)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Eating B seems to boost your mood!", "Eating A seems to boost your mood!"}, first)
}

type stubRecords struct {
	foods  []models.FoodEntry
	moods  []models.MoodEntry
	err    error
	limits []int
}

func (s *stubRecords) RecentFoodEntries(_ context.Context, _ uint, limit int) ([]models.FoodEntry, error) {
	s.limits = append(s.limits, limit)
	return s.foods, s.err
}

func (s *stubRecords) RecentMoodEntries(_ context.Context, _ uint, limit int) ([]models.MoodEntry, error) {
	s.limits = append(s.limits, limit)
	return s.moods, s.err
}

func TestInsightService_ForUser(t *testing.T) {
	src := &stubRecords{
		foods: []models.FoodEntry{food("Pizza", t0)},
		moods: []models.MoodEntry{mood(models.MoodExcited, 4, t0.Add(time.Hour))},
	}
	svc := NewInsightService(src, 20, zap.NewNop(), nil)

	got, err := svc.ForUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eating Pizza seems to boost your mood!"}, got)
	assert.Equal(t, []int{20, 20}, src.limits)
}

func TestInsightService_StoreErrorIsNotFallback(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewInsightService(&stubRecords{err: boom}, 20, zap.NewNop(), nil)

	got, err := svc.ForUser(context.Background(), 1)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, boom)

	_, err = svc.DetailsForUser(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}
