package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moodbite/models"

	"go.uber.org/zap"
)

var chatResponses = map[models.MoodLabel]string{
	models.MoodHappy:   "I'm glad you're feeling happy! What did you eat today that might be contributing to your good mood?",
	models.MoodSad:     "I'm sorry to hear you're feeling down. Sometimes what we eat can affect our mood. Have you noticed any patterns with your food choices?",
	models.MoodAngry:   "It sounds like you're feeling frustrated. Would you like to talk about what's bothering you? Also, have you logged your meals today?",
	models.MoodAnxious: "Feeling anxious can be tough. Have you tried logging your meals? Sometimes certain foods can help reduce anxiety.",
	models.MoodExcited: "Your excitement is contagious! What's making you feel this way? Have you logged any special meals recently?",
	models.MoodTired:   "Feeling tired might be related to your diet. Have you been eating enough nutritious foods? Let's check your food logs.",
	models.MoodCalm:    "It's great that you're feeling calm. What foods do you think contribute to this peaceful state?",
}

const defaultChatResponse = "Thanks for sharing. How has your diet been lately? Remember, what we eat can affect how we feel."

// ChatResponse returns the canned reply for a detected mood.
func ChatResponse(mood models.MoodLabel) string {
	if r, ok := chatResponses[mood]; ok {
		return r
	}
	return defaultChatResponse
}

type ChatStore interface {
	CreateChatLog(ctx context.Context, l *models.ChatLog) error
	RecentChatLogs(ctx context.Context, userID uint, limit int) ([]models.ChatLog, error)
}

type ChatReply struct {
	Response     string           `json:"response"`
	DetectedMood models.MoodLabel `json:"detected_mood"`
	MoodEmoji    string           `json:"mood_emoji"`
}

type ChatService struct {
	store        ChatStore
	classifier   MoodClassifier
	historyLimit int
	log          *zap.Logger
}

func NewChatService(store ChatStore, classifier MoodClassifier, historyLimit int, log *zap.Logger) *ChatService {
	return &ChatService{store: store, classifier: classifier, historyLimit: historyLimit, log: log.Named("chat")}
}

// Reply classifies the message, picks a response and records the exchange.
func (s *ChatService) Reply(ctx context.Context, userID uint, message string) (*ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}

	mood := s.classifier.Classify(ctx, message)
	if !mood.Valid() {
		s.log.Warn("classifier returned unknown label", zap.String("label", string(mood)))
		mood = models.MoodNeutral
	}
	reply := &ChatReply{
		Response:     ChatResponse(mood),
		DetectedMood: mood,
		MoodEmoji:    mood.Emoji(),
	}

	err := s.store.CreateChatLog(ctx, &models.ChatLog{
		UserID:       userID,
		Message:      message,
		Response:     reply.Response,
		DetectedMood: mood,
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *ChatService) History(ctx context.Context, userID uint) ([]models.ChatLog, error) {
	return s.store.RecentChatLogs(ctx, userID, s.historyLimit)
}
