package storage

import (
	"context"
	"database/sql"
	"time"

	"moodbite/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	foodColumns = "id, user_id, food_name, calories, logged_at"
	moodColumns = "id, user_id, mood, intensity, logged_at"
)

func (s *Store) CreateFoodEntry(ctx context.Context, e *models.FoodEntry) error {
	return translate(s.db.WithContext(ctx).Create(e).Error, "create food entry")
}

func (s *Store) CreateMoodEntry(ctx context.Context, e *models.MoodEntry) error {
	return translate(s.db.WithContext(ctx).Create(e).Error, "create mood entry")
}

// RecentFoodEntries returns at most limit entries, newest first. A user with
// no entries gets an empty slice.
func (s *Store) RecentFoodEntries(ctx context.Context, userID uint, limit int) ([]models.FoodEntry, error) {
	return fillRecent(limit, func(offset, n int) ([]models.FoodEntry, int, error) {
		q := s.db.WithContext(ctx).
			Model(&models.FoodEntry{}).
			Select(foodColumns).
			Where("user_id = ?", userID).
			Order("logged_at DESC").
			Order("id DESC").
			Offset(offset).
			Limit(n)
		return s.scanFood(q)
	})
}

func (s *Store) RecentMoodEntries(ctx context.Context, userID uint, limit int) ([]models.MoodEntry, error) {
	return fillRecent(limit, func(offset, n int) ([]models.MoodEntry, int, error) {
		q := s.db.WithContext(ctx).
			Model(&models.MoodEntry{}).
			Select(moodColumns).
			Where("user_id = ?", userID).
			Order("logged_at DESC").
			Order("id DESC").
			Offset(offset).
			Limit(n)
		return s.scanMood(q)
	})
}

// fillRecent pages past skipped rows until limit valid entries are collected
// or the table runs out. SQLite compares malformed text timestamps as
// strings, so they can sort ahead of every real entry.
func fillRecent[T any](limit int, page func(offset, n int) ([]T, int, error)) ([]T, error) {
	out := make([]T, 0)
	offset := 0
	for len(out) < limit {
		want := limit - len(out)
		batch, read, err := page(offset, want)
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
		if read < want {
			break
		}
		offset += read
	}
	return out, nil
}

// FoodEntriesBetween returns entries in [from, to), oldest first.
func (s *Store) FoodEntriesBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.FoodEntry, error) {
	q := s.db.WithContext(ctx).
		Model(&models.FoodEntry{}).
		Select(foodColumns).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from.UTC(), to.UTC()).
		Order("logged_at ASC")
	out, _, err := s.scanFood(q)
	return out, err
}

// MoodEntriesBetween returns entries in [from, to), oldest first.
func (s *Store) MoodEntriesBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.MoodEntry, error) {
	q := s.db.WithContext(ctx).
		Model(&models.MoodEntry{}).
		Select(moodColumns).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from.UTC(), to.UTC()).
		Order("logged_at ASC")
	out, _, err := s.scanMood(q)
	return out, err
}

// Rows whose timestamp cannot be decoded are logged and skipped so a single
// corrupt row does not hide the rest of the user's history. read counts every
// row returned, skipped or not.
func (s *Store) scanFood(q *gorm.DB) (out []models.FoodEntry, read int, err error) {
	rows, err := q.Rows()
	if err != nil {
		return nil, 0, translate(err, "query food entries")
	}
	defer rows.Close()

	out = make([]models.FoodEntry, 0)
	for rows.Next() {
		read++
		var (
			e   models.FoodEntry
			cal sql.NullInt64
			raw any
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.FoodName, &cal, &raw); err != nil {
			return nil, read, translate(err, "scan food entry")
		}
		ts, err := parseTimestamp(raw)
		if err != nil {
			s.log.Warn("skipping food entry with malformed timestamp",
				zap.Uint("id", e.ID), zap.Uint("user_id", e.UserID), zap.Error(err))
			continue
		}
		e.Timestamp = ts
		if cal.Valid {
			c := int(cal.Int64)
			e.Calories = &c
		}
		out = append(out, e)
	}
	return out, read, translate(rows.Err(), "iterate food entries")
}

func (s *Store) scanMood(q *gorm.DB) (out []models.MoodEntry, read int, err error) {
	rows, err := q.Rows()
	if err != nil {
		return nil, 0, translate(err, "query mood entries")
	}
	defer rows.Close()

	out = make([]models.MoodEntry, 0)
	for rows.Next() {
		read++
		var (
			e    models.MoodEntry
			mood string
			raw  any
		)
		if err := rows.Scan(&e.ID, &e.UserID, &mood, &e.Intensity, &raw); err != nil {
			return nil, read, translate(err, "scan mood entry")
		}
		ts, err := parseTimestamp(raw)
		if err != nil {
			s.log.Warn("skipping mood entry with malformed timestamp",
				zap.Uint("id", e.ID), zap.Uint("user_id", e.UserID), zap.Error(err))
			continue
		}
		e.Mood = models.MoodLabel(mood)
		e.Timestamp = ts
		out = append(out, e)
	}
	return out, read, translate(rows.Err(), "iterate mood entries")
}
