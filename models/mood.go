package models

import "time"

// MoodLabel is one of the fixed mood categories a user can log or the
// classifier can emit.
type MoodLabel string

const (
	MoodHappy    MoodLabel = "happy"
	MoodSad      MoodLabel = "sad"
	MoodAngry    MoodLabel = "angry"
	MoodAnxious  MoodLabel = "anxious"
	MoodExcited  MoodLabel = "excited"
	MoodTired    MoodLabel = "tired"
	MoodCalm     MoodLabel = "calm"
	MoodConfused MoodLabel = "confused"
	MoodNeutral  MoodLabel = "neutral"
)

// MoodLabels lists every label in display order.
var MoodLabels = []MoodLabel{
	MoodHappy, MoodSad, MoodAngry, MoodAnxious, MoodExcited,
	MoodTired, MoodCalm, MoodConfused, MoodNeutral,
}

var moodEmojis = map[MoodLabel]string{
	MoodHappy:    "😊",
	MoodSad:      "😢",
	MoodAngry:    "😠",
	MoodAnxious:  "😰",
	MoodExcited:  "🤩",
	MoodTired:    "😴",
	MoodCalm:     "😌",
	MoodConfused: "😕",
	MoodNeutral:  "😐",
}

func (m MoodLabel) Valid() bool {
	_, ok := moodEmojis[m]
	return ok
}

// Emoji returns the label's emoji; unknown labels get the neutral face.
func (m MoodLabel) Emoji() string {
	if e, ok := moodEmojis[m]; ok {
		return e
	}
	return moodEmojis[MoodNeutral]
}

// MoodEmojis returns a copy of the label -> emoji table keyed by string, the
// shape API clients expect.
func MoodEmojis() map[string]string {
	out := make(map[string]string, len(moodEmojis))
	for k, v := range moodEmojis {
		out[string(k)] = v
	}
	return out
}

type MoodEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_mood_user_time,priority:1;not null" json:"user_id"`
	Mood      MoodLabel `gorm:"size:20;not null" json:"mood"`
	Intensity int       `gorm:"not null" json:"intensity"`
	Timestamp time.Time `gorm:"column:logged_at;index:idx_mood_user_time,priority:2;not null" json:"timestamp"`
}

func (MoodEntry) TableName() string { return "mood_logs" }
