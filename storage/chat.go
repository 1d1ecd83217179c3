package storage

import (
	"context"

	"moodbite/models"
)

func (s *Store) CreateChatLog(ctx context.Context, l *models.ChatLog) error {
	return translate(s.db.WithContext(ctx).Create(l).Error, "create chat log")
}

// RecentChatLogs returns the last limit exchanges in chronological order.
func (s *Store) RecentChatLogs(ctx context.Context, userID uint, limit int) ([]models.ChatLog, error) {
	logs := make([]models.ChatLog, 0, limit)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, translate(err, "list chat logs")
	}
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}
