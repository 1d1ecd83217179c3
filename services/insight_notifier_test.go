package services

import (
	"context"
	"testing"
	"time"

	"moodbite/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingBroadcaster struct {
	online   map[uint]bool
	payloads []any
}

func (b *recordingBroadcaster) HasClients(userID uint) bool { return b.online[userID] }

func (b *recordingBroadcaster) Broadcast(_ uint, payload any) int {
	b.payloads = append(b.payloads, payload)
	return 1
}

func TestInsightNotifier_PushesToConnectedUsers(t *testing.T) {
	store := newMemStore()
	insights := NewInsightService(store, 20, zap.NewNop(), nil)
	rt := &recordingBroadcaster{online: map[uint]bool{1: true}}
	entries := newTestEntryService(store, NewInsightNotifier(insights, rt, zap.NewNop()), nil)
	ctx := context.Background()

	at := t0.Add(time.Hour)
	_, err := entries.LogFood(ctx, 1, FoodInput{FoodName: "Pizza"})
	require.NoError(t, err)
	_, err = entries.LogMood(ctx, 1, MoodInput{Mood: models.MoodHappy, Intensity: 5, Timestamp: &at})
	require.NoError(t, err)

	require.Len(t, rt.payloads, 2)
	assert.Equal(t, InsightsUpdated{Kind: "insights.updated", Insights: []string{FallbackInsight}}, rt.payloads[0])
	assert.Equal(t, InsightsUpdated{
		Kind:     "insights.updated",
		Insights: []string{"Eating Pizza seems to boost your mood!"},
	}, rt.payloads[1])

	// offline users cost nothing
	_, err = entries.LogFood(ctx, 2, FoodInput{FoodName: "Tea"})
	require.NoError(t, err)
	assert.Len(t, rt.payloads, 2)
}
