package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"moodbite/models"
	"moodbite/storage"
)

// memStore is an in-memory stand-in for storage.Store.
type memStore struct {
	mu     sync.Mutex
	nextID uint
	users  []models.User
	foods  []models.FoodEntry
	moods  []models.MoodEntry
	chats  []models.ChatLog
	err    error
}

func newMemStore() *memStore { return &memStore{} }

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return fmt.Errorf("create user: %w", storage.ErrDuplicate)
		}
	}
	u.ID = m.id()
	u.CreatedAt = time.Now().UTC()
	m.users = append(m.users, *u)
	return nil
}

func (m *memStore) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("find user: %w", storage.ErrNotFound)
}

func (m *memStore) FindUserByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("find user: %w", storage.ErrNotFound)
}

func (m *memStore) DeleteUser(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete user: %w", storage.ErrNotFound)
}

func (m *memStore) CreateFoodEntry(_ context.Context, e *models.FoodEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	e.ID = m.id()
	m.foods = append(m.foods, *e)
	return nil
}

func (m *memStore) CreateMoodEntry(_ context.Context, e *models.MoodEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	e.ID = m.id()
	m.moods = append(m.moods, *e)
	return nil
}

func (m *memStore) RecentFoodEntries(_ context.Context, userID uint, limit int) ([]models.FoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.FoodEntry, 0)
	for _, e := range m.foods {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) RecentMoodEntries(_ context.Context, userID uint, limit int) ([]models.MoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.MoodEntry, 0)
	for _, e := range m.moods {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) FoodEntriesBetween(_ context.Context, userID uint, from, to time.Time) ([]models.FoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.FoodEntry, 0)
	for _, e := range m.foods {
		if e.UserID == userID && !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) MoodEntriesBetween(_ context.Context, userID uint, from, to time.Time) ([]models.MoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.MoodEntry, 0)
	for _, e := range m.moods {
		if e.UserID == userID && !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) CreateChatLog(_ context.Context, l *models.ChatLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	l.ID = m.id()
	m.chats = append(m.chats, *l)
	return nil
}

func (m *memStore) RecentChatLogs(_ context.Context, userID uint, limit int) ([]models.ChatLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ChatLog, 0)
	for _, l := range m.chats {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// fixedClassifier always answers with the same label.
type fixedClassifier models.MoodLabel

func (f fixedClassifier) Classify(context.Context, string) models.MoodLabel {
	return models.MoodLabel(f)
}
