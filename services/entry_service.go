package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moodbite/models"

	"go.uber.org/zap"
)

const (
	MinIntensity = 1
	MaxIntensity = 5
)

type EntryStore interface {
	CreateFoodEntry(ctx context.Context, e *models.FoodEntry) error
	CreateMoodEntry(ctx context.Context, e *models.MoodEntry) error
	RecentFoodEntries(ctx context.Context, userID uint, limit int) ([]models.FoodEntry, error)
	RecentMoodEntries(ctx context.Context, userID uint, limit int) ([]models.MoodEntry, error)
}

// EntryObserver is told after a food or mood entry has been stored.
type EntryObserver interface {
	EntryLogged(ctx context.Context, userID uint)
}

type FoodInput struct {
	FoodName  string
	Calories  *int
	Timestamp *time.Time // defaults to now
}

type MoodInput struct {
	Mood      models.MoodLabel
	Intensity int
	Timestamp *time.Time // defaults to now
}

type EntryService struct {
	store    EntryStore
	observer EntryObserver
	log      *zap.Logger
	metrics  *Metrics
	now      func() time.Time
}

func NewEntryService(store EntryStore, observer EntryObserver, log *zap.Logger, metrics *Metrics) *EntryService {
	return &EntryService{
		store:    store,
		observer: observer,
		log:      log.Named("entries"),
		metrics:  metrics,
		now:      time.Now,
	}
}

func (s *EntryService) LogFood(ctx context.Context, userID uint, in FoodInput) (*models.FoodEntry, error) {
	if strings.TrimSpace(in.FoodName) == "" {
		return nil, fmt.Errorf("%w: food name is required", ErrValidation)
	}
	if in.Calories != nil && *in.Calories < 0 {
		return nil, fmt.Errorf("%w: calories must not be negative", ErrValidation)
	}

	entry := &models.FoodEntry{
		UserID:    userID,
		FoodName:  in.FoodName,
		Calories:  in.Calories,
		Timestamp: s.timestamp(in.Timestamp),
	}
	if err := s.store.CreateFoodEntry(ctx, entry); err != nil {
		return nil, err
	}
	s.metrics.observeEntry("food")
	s.log.Debug("food logged", zap.Uint("user_id", userID), zap.Uint("entry_id", entry.ID))
	s.notify(ctx, userID)
	return entry, nil
}

func (s *EntryService) LogMood(ctx context.Context, userID uint, in MoodInput) (*models.MoodEntry, error) {
	if !in.Mood.Valid() {
		return nil, fmt.Errorf("%w: unknown mood %q", ErrValidation, in.Mood)
	}
	if in.Intensity < MinIntensity || in.Intensity > MaxIntensity {
		return nil, fmt.Errorf("%w: intensity must be between %d and %d", ErrValidation, MinIntensity, MaxIntensity)
	}

	entry := &models.MoodEntry{
		UserID:    userID,
		Mood:      in.Mood,
		Intensity: in.Intensity,
		Timestamp: s.timestamp(in.Timestamp),
	}
	if err := s.store.CreateMoodEntry(ctx, entry); err != nil {
		return nil, err
	}
	s.metrics.observeEntry("mood")
	s.log.Debug("mood logged", zap.Uint("user_id", userID), zap.Uint("entry_id", entry.ID))
	s.notify(ctx, userID)
	return entry, nil
}

func (s *EntryService) RecentFood(ctx context.Context, userID uint, limit int) ([]models.FoodEntry, error) {
	return s.store.RecentFoodEntries(ctx, userID, limit)
}

func (s *EntryService) RecentMood(ctx context.Context, userID uint, limit int) ([]models.MoodEntry, error) {
	return s.store.RecentMoodEntries(ctx, userID, limit)
}

func (s *EntryService) timestamp(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return s.now().UTC()
	}
	return t.UTC()
}

func (s *EntryService) notify(ctx context.Context, userID uint) {
	if s.observer != nil {
		s.observer.EntryLogged(ctx, userID)
	}
}
