package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoodLabelValid(t *testing.T) {
	for _, l := range MoodLabels {
		assert.True(t, l.Valid(), l)
		assert.NotEmpty(t, l.Emoji(), l)
	}
	assert.False(t, MoodLabel("bored").Valid())
	assert.False(t, MoodLabel("Happy").Valid())
}

func TestMoodEmojis(t *testing.T) {
	emojis := MoodEmojis()
	assert.Len(t, emojis, len(MoodLabels))
	assert.Equal(t, "😊", emojis["happy"])

	// callers get a copy
	emojis["happy"] = "x"
	assert.Equal(t, "😊", MoodHappy.Emoji())
	assert.Equal(t, MoodNeutral.Emoji(), MoodLabel("bored").Emoji())
}
