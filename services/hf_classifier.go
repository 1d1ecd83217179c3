package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"moodbite/models"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	DefaultEmotionModel   = "bhadresh-savani/bert-base-uncased-emotion"
	DefaultSentimentModel = "distilbert-base-uncased-finetuned-sst-2-english"

	// sentiment alone decides happy/sad only above this confidence
	sentimentConfidence = 0.8
)

type HuggingFaceConfig struct {
	BaseURL        string
	Token          string
	EmotionModel   string
	SentimentModel string
	Timeout        time.Duration
}

// HuggingFaceClassifier asks the Hugging Face inference API for an emotion
// and a sentiment prediction and maps them onto mood labels. Calls are
// guarded by a circuit breaker; on any failure the fallback classifier
// answers instead.
type HuggingFaceClassifier struct {
	client   *http.Client
	cfg      HuggingFaceConfig
	breaker  *gobreaker.CircuitBreaker
	fallback MoodClassifier
	log      *zap.Logger
	metrics  *Metrics
}

func NewHuggingFaceClassifier(cfg HuggingFaceConfig, fallback MoodClassifier, log *zap.Logger, metrics *Metrics) *HuggingFaceClassifier {
	if cfg.EmotionModel == "" {
		cfg.EmotionModel = DefaultEmotionModel
	}
	if cfg.SentimentModel == "" {
		cfg.SentimentModel = DefaultSentimentModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	log = log.Named("classifier.huggingface")
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "huggingface",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// a caller hanging up says nothing about the remote's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &HuggingFaceClassifier{
		client:   &http.Client{Timeout: cfg.Timeout},
		cfg:      cfg,
		breaker:  breaker,
		fallback: fallback,
		log:      log,
		metrics:  metrics,
	}
}

func (c *HuggingFaceClassifier) Classify(ctx context.Context, text string) models.MoodLabel {
	if strings.TrimSpace(text) == "" {
		return models.MoodNeutral
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.detect(ctx, text)
	})
	if err != nil {
		c.log.Warn("remote classification failed, using fallback", zap.Error(err))
		if c.fallback == nil {
			c.metrics.observeClassified(models.MoodNeutral, "fallback")
			return models.MoodNeutral
		}
		return c.fallback.Classify(ctx, text)
	}

	label := res.(models.MoodLabel)
	c.metrics.observeClassified(label, "huggingface")
	return label
}

func (c *HuggingFaceClassifier) detect(ctx context.Context, text string) (models.MoodLabel, error) {
	sentiment, err := c.query(ctx, c.cfg.SentimentModel, text)
	if err != nil {
		return "", fmt.Errorf("sentiment: %w", err)
	}
	emotion, err := c.query(ctx, c.cfg.EmotionModel, text)
	if err != nil {
		return "", fmt.Errorf("emotion: %w", err)
	}
	return mapModelOutput(emotion.Label, sentiment.Label, sentiment.Score), nil
}

// mapModelOutput folds the emotion and sentiment predictions into a label.
func mapModelOutput(emotion, sentiment string, score float64) models.MoodLabel {
	emotion = strings.ToLower(emotion)
	sentiment = strings.ToUpper(sentiment)
	switch {
	case emotion == "joy" || (sentiment == "POSITIVE" && score > sentimentConfidence):
		return models.MoodHappy
	case emotion == "sadness" || (sentiment == "NEGATIVE" && score > sentimentConfidence):
		return models.MoodSad
	case emotion == "anger":
		return models.MoodAngry
	case emotion == "fear":
		return models.MoodAnxious
	case emotion == "love":
		return models.MoodExcited
	default:
		return models.MoodNeutral
	}
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// query posts text to one model and returns its highest scoring label.
func (c *HuggingFaceClassifier) query(ctx context.Context, model, text string) (labelScore, error) {
	body, err := json.Marshal(map[string]any{"inputs": text})
	if err != nil {
		return labelScore{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/models/%s", c.cfg.BaseURL, model), bytes.NewReader(body))
	if err != nil {
		return labelScore{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")
	// load cold models instead of returning a "loading" error
	req.Header.Set("x-wait-for-model", "true")

	resp, err := c.client.Do(req)
	if err != nil {
		return labelScore{}, fmt.Errorf("hf request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return labelScore{}, fmt.Errorf("read hf response error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var hfErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBytes, &hfErr) == nil && hfErr.Error != "" {
			return labelScore{}, fmt.Errorf("hf api error (%d): %s", resp.StatusCode, hfErr.Error)
		}
		return labelScore{}, fmt.Errorf("hf api error (%d)", resp.StatusCode)
	}

	return topLabel(respBytes)
}

// topLabel accepts both [[{label,score}...]] and [{label,score}...].
func topLabel(raw []byte) (labelScore, error) {
	var scores []labelScore
	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		scores = nested[0]
	} else if err := json.Unmarshal(raw, &scores); err != nil {
		return labelScore{}, fmt.Errorf("decode hf response: %w", err)
	}
	if len(scores) == 0 {
		return labelScore{}, errors.New("empty hf prediction")
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, nil
}
