package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"moodbite/models"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// hfServer answers sentiment and emotion requests with the given top labels.
func hfServer(t *testing.T, emotion, sentiment string, sentimentScore float64) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPost, r.Method)

		var body struct {
			Inputs string `json:"inputs"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotEmpty(t, body.Inputs)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/models/"+DefaultSentimentModel):
			_ = json.NewEncoder(w).Encode([][]labelScore{{
				{Label: sentiment, Score: sentimentScore},
				{Label: "OTHER", Score: 1 - sentimentScore},
			}})
		case strings.HasSuffix(r.URL.Path, "/models/"+DefaultEmotionModel):
			_ = json.NewEncoder(w).Encode([]labelScore{
				{Label: "surprise", Score: 0.1},
				{Label: emotion, Score: 0.8},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestHF(baseURL string, fallback MoodClassifier) *HuggingFaceClassifier {
	return NewHuggingFaceClassifier(HuggingFaceConfig{BaseURL: baseURL + "/", Token: "test-token"}, fallback, zap.NewNop(), nil)
}

func TestHuggingFaceClassifier_MapsRemotePrediction(t *testing.T) {
	srv, hits := hfServer(t, "fear", "NEGATIVE", 0.6)
	c := newTestHF(srv.URL, fixedClassifier(models.MoodConfused))

	assert.Equal(t, models.MoodAnxious, c.Classify(context.Background(), "the exam is tomorrow"))
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestHuggingFaceClassifier_EmptyTextSkipsRemote(t *testing.T) {
	srv, hits := hfServer(t, "joy", "POSITIVE", 0.99)
	c := newTestHF(srv.URL, nil)

	assert.Equal(t, models.MoodNeutral, c.Classify(context.Background(), "  "))
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestHuggingFaceClassifier_FallsBackOnError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer srv.Close()

	c := newTestHF(srv.URL, fixedClassifier(models.MoodConfused))
	assert.Equal(t, models.MoodConfused, c.Classify(context.Background(), "hello"))

	noFallback := newTestHF(srv.URL, nil)
	assert.Equal(t, models.MoodNeutral, noFallback.Classify(context.Background(), "hello"))
}

func TestHuggingFaceClassifier_BreakerStopsCallingRemote(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestHF(srv.URL, NewLexiconClassifier(nil))
	for i := 0; i < 6; i++ {
		assert.Equal(t, models.MoodHappy, c.Classify(context.Background(), "I am so happy"))
	}
	// the sentiment call fails first, so each attempt is one hit; the breaker
	// opens after three consecutive failures
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestHuggingFaceClassifier_CanceledCallersDoNotTripBreaker(t *testing.T) {
	srv, hits := hfServer(t, "fear", "NEGATIVE", 0.6)
	c := newTestHF(srv.URL, fixedClassifier(models.MoodConfused))

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		assert.Equal(t, models.MoodConfused, c.Classify(canceled, "the exam is tomorrow"))
	}
	assert.Equal(t, gobreaker.StateClosed, c.breaker.State())

	assert.Equal(t, models.MoodAnxious, c.Classify(context.Background(), "the exam is tomorrow"))
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestMapModelOutput(t *testing.T) {
	tests := []struct {
		emotion, sentiment string
		score              float64
		want               models.MoodLabel
	}{
		{"joy", "NEGATIVE", 0.9, models.MoodHappy},
		{"anger", "POSITIVE", 0.95, models.MoodHappy},
		{"anger", "NEGATIVE", 0.95, models.MoodSad},
		{"sadness", "POSITIVE", 0.5, models.MoodSad},
		{"anger", "NEGATIVE", 0.7, models.MoodAngry},
		{"fear", "POSITIVE", 0.8, models.MoodAnxious},
		{"love", "NEGATIVE", 0.2, models.MoodExcited},
		{"surprise", "POSITIVE", 0.8, models.MoodNeutral},
		{"Joy", "positive", 0.1, models.MoodHappy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mapModelOutput(tt.emotion, tt.sentiment, tt.score), "%s/%s/%.2f", tt.emotion, tt.sentiment, tt.score)
	}
}

func TestTopLabel(t *testing.T) {
	best, err := topLabel([]byte(`[[{"label":"sadness","score":0.2},{"label":"joy","score":0.7}]]`))
	require.NoError(t, err)
	assert.Equal(t, "joy", best.Label)

	best, err = topLabel([]byte(`[{"label":"POSITIVE","score":0.9},{"label":"NEGATIVE","score":0.1}]`))
	require.NoError(t, err)
	assert.Equal(t, "POSITIVE", best.Label)

	_, err = topLabel([]byte(`[]`))
	assert.Error(t, err)

	_, err = topLabel([]byte(`{"error":"bad"}`))
	assert.Error(t, err)
}
