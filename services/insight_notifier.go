package services

import (
	"context"

	"go.uber.org/zap"
)

type Broadcaster interface {
	HasClients(userID uint) bool
	Broadcast(userID uint, payload any) int
}

type InsightsUpdated struct {
	Kind     string   `json:"kind"`
	Insights []string `json:"insights"`
}

// InsightNotifier pushes fresh insights to a user's open connections
// whenever they log something.
type InsightNotifier struct {
	insights *InsightService
	rt       Broadcaster
	log      *zap.Logger
}

func NewInsightNotifier(insights *InsightService, rt Broadcaster, log *zap.Logger) *InsightNotifier {
	return &InsightNotifier{insights: insights, rt: rt, log: log.Named("notifier")}
}

func (n *InsightNotifier) EntryLogged(ctx context.Context, userID uint) {
	if n.rt == nil || !n.rt.HasClients(userID) {
		return
	}
	insights, err := n.insights.ForUser(ctx, userID)
	if err != nil {
		n.log.Warn("could not refresh insights", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	n.rt.Broadcast(userID, InsightsUpdated{Kind: "insights.updated", Insights: insights})
}
