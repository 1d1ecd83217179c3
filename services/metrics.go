package services

import (
	"moodbite/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the application's prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	Insights      *prometheus.CounterVec
	Classified    *prometheus.CounterVec
	EntriesLogged *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moodbite",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "moodbite",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		Insights: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moodbite",
			Name:      "insights_generated_total",
			Help:      "Insight messages produced, by kind.",
		}, []string{"kind"}),
		Classified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moodbite",
			Name:      "moods_classified_total",
			Help:      "Chat messages classified, by label and classifier source.",
		}, []string{"label", "source"}),
		EntriesLogged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moodbite",
			Name:      "entries_logged_total",
			Help:      "Food and mood entries created.",
		}, []string{"type"}),
	}
	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.Insights, m.Classified, m.EntriesLogged)
	return m
}

func (m *Metrics) observeInsights(correlations []FoodMoodCorrelation, insights []string) {
	if m == nil {
		return
	}
	if len(insights) == 1 && insights[0] == FallbackInsight {
		m.Insights.WithLabelValues("fallback").Inc()
		return
	}
	for _, c := range correlations {
		if c.Verdict != VerdictNone {
			m.Insights.WithLabelValues(string(c.Verdict)).Inc()
		}
	}
}

func (m *Metrics) observeClassified(label models.MoodLabel, source string) {
	if m == nil {
		return
	}
	m.Classified.WithLabelValues(string(label), source).Inc()
}

func (m *Metrics) observeEntry(kind string) {
	if m == nil {
		return
	}
	m.EntriesLogged.WithLabelValues(kind).Inc()
}
