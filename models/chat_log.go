package models

import "time"

type ChatLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Response     string    `gorm:"type:text;not null" json:"response"`
	DetectedMood MoodLabel `gorm:"size:20" json:"detected_mood"`
	Timestamp    time.Time `gorm:"column:logged_at;index;not null" json:"timestamp"`
}

func (ChatLog) TableName() string { return "chat_logs" }
