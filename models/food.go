package models

import "time"

// FoodEntry is one logged instance of eating a named food. Entries are never
// updated; they disappear only when the owning account is deleted.
type FoodEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_food_user_time,priority:1;not null" json:"user_id"`
	FoodName  string    `gorm:"size:255;not null" json:"food_name"`
	Calories  *int      `json:"calories,omitempty"`
	Timestamp time.Time `gorm:"column:logged_at;index:idx_food_user_time,priority:2;not null" json:"timestamp"`
}

func (FoodEntry) TableName() string { return "food_logs" }
