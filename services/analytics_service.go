package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"moodbite/models"
)

const dateLayout = "2006-01-02"

type AnalyticsStore interface {
	FoodEntriesBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.FoodEntry, error)
	MoodEntriesBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.MoodEntry, error)
}

type AnalyticsService struct{ store AnalyticsStore }

func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// ---------- Summary ----------

type FoodCount struct {
	Food  string `json:"food"`
	Count int    `json:"count"`
}

type MoodStat struct {
	Count        int     `json:"count"`
	AvgIntensity float64 `json:"avg_intensity"`
}

type AnalyticsSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	Food struct {
		Entries           int         `json:"entries"`
		TotalCalories     int         `json:"total_calories"`
		AvgCaloriesPerDay float64     `json:"avg_calories_per_day"`
		TopFoods          []FoodCount `json:"top_foods"`
	} `json:"food"`

	Mood struct {
		Entries      int                           `json:"entries"`
		AvgIntensity float64                       `json:"avg_intensity"`
		Dominant     models.MoodLabel              `json:"dominant_mood,omitempty"`
		Labels       map[models.MoodLabel]MoodStat `json:"labels"`
	} `json:"mood"`

	Metadata struct {
		DaysCounted        int  `json:"days_counted"`
		IncludeMissingDays bool `json:"include_missing_days"`
	} `json:"metadata"`
}

// Summary aggregates the entries logged on the calendar days from..to
// (inclusive, in from's location). Per-day averages divide by every day in
// the range when includeMissing is set, otherwise by days with any entry.
func (s *AnalyticsService) Summary(
	ctx context.Context, userID uint, from, to time.Time, includeMissing bool,
) (*AnalyticsSummary, error) {
	if to.Before(from) {
		return nil, errors.New("`to` must be on/after `from`")
	}
	loc := from.Location()
	start, end := dayStart(from), dayStart(to.In(loc)).AddDate(0, 0, 1)

	foods, err := s.store.FoodEntriesBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	moods, err := s.store.MoodEntriesBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	active := map[string]bool{}
	foodCounts := map[string]int{}
	calories := 0
	for _, f := range foods {
		active[f.Timestamp.In(loc).Format(dateLayout)] = true
		foodCounts[f.FoodName]++
		if f.Calories != nil {
			calories += *f.Calories
		}
	}

	type acc struct{ n, sum int }
	labels := map[models.MoodLabel]*acc{}
	counts := map[models.MoodLabel]int{}
	intensity := 0
	for _, m := range moods {
		active[m.Timestamp.In(loc).Format(dateLayout)] = true
		if labels[m.Mood] == nil {
			labels[m.Mood] = &acc{}
		}
		labels[m.Mood].n++
		labels[m.Mood].sum += m.Intensity
		counts[m.Mood]++
		intensity += m.Intensity
	}

	days := len(active)
	if includeMissing {
		days = int(end.Sub(start).Hours()/24 + 0.5)
	}

	out := &AnalyticsSummary{}
	out.Range.From = start.Format(dateLayout)
	out.Range.To = end.AddDate(0, 0, -1).Format(dateLayout)
	out.Metadata.DaysCounted = days
	out.Metadata.IncludeMissingDays = includeMissing

	out.Food.Entries = len(foods)
	out.Food.TotalCalories = calories
	out.Food.AvgCaloriesPerDay = avg(float64(calories), days)
	out.Food.TopFoods = topFoods(foodCounts, 5)

	out.Mood.Entries = len(moods)
	out.Mood.AvgIntensity = avg(float64(intensity), len(moods))
	out.Mood.Labels = make(map[models.MoodLabel]MoodStat, len(labels))
	for label, a := range labels {
		out.Mood.Labels[label] = MoodStat{Count: a.n, AvgIntensity: avg(float64(a.sum), a.n)}
	}
	if len(counts) > 0 {
		out.Mood.Dominant = dominantMood(counts)
	}
	return out, nil
}

// ---------- Weekly Overview ----------

type DayOverview struct {
	Date         string           `json:"date"`
	FoodEntries  int              `json:"food_entries"`
	Calories     int              `json:"calories"`
	MoodEntries  int              `json:"mood_entries"`
	AvgIntensity float64          `json:"avg_intensity"`
	DominantMood models.MoodLabel `json:"dominant_mood,omitempty"`
}

type WeeklyOverviewResponse struct {
	WeekStart string        `json:"week_start"`
	Days      []DayOverview `json:"days"`
}

func (s *AnalyticsService) WeeklyOverview(ctx context.Context, userID uint, weekStart time.Time) (*WeeklyOverviewResponse, error) {
	loc := weekStart.Location()
	from := dayStart(weekStart)
	to := from.AddDate(0, 0, 7)

	foods, err := s.store.FoodEntriesBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	moods, err := s.store.MoodEntriesBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	idx := map[string]int{}
	days := make([]DayOverview, 7)
	for i := range days {
		key := from.AddDate(0, 0, i).Format(dateLayout)
		days[i].Date = key
		idx[key] = i
	}

	for _, f := range foods {
		i, ok := idx[f.Timestamp.In(loc).Format(dateLayout)]
		if !ok {
			continue
		}
		days[i].FoodEntries++
		if f.Calories != nil {
			days[i].Calories += *f.Calories
		}
	}

	sums := make([]int, 7)
	counts := make([]map[models.MoodLabel]int, 7)
	for _, m := range moods {
		i, ok := idx[m.Timestamp.In(loc).Format(dateLayout)]
		if !ok {
			continue
		}
		days[i].MoodEntries++
		sums[i] += m.Intensity
		if counts[i] == nil {
			counts[i] = map[models.MoodLabel]int{}
		}
		counts[i][m.Mood]++
	}
	for i := range days {
		days[i].AvgIntensity = avg(float64(sums[i]), days[i].MoodEntries)
		if counts[i] != nil {
			days[i].DominantMood = dominantMood(counts[i])
		}
	}

	return &WeeklyOverviewResponse{WeekStart: from.Format(dateLayout), Days: days}, nil
}

// ---------- internals ----------

func topFoods(counts map[string]int, n int) []FoodCount {
	out := make([]FoodCount, 0, len(counts))
	for food, c := range counts {
		out = append(out, FoodCount{Food: food, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Food < out[j].Food
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of t's week at midnight.
func StartOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return dayStart(t).AddDate(0, 0, -(wd - 1))
}
