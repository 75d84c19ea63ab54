// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msomdec/interview-prep/internal/domain"
)

// Collector records interview, coach and HTTP metrics. It satisfies the
// service layer's session and coach observer interfaces.
type Collector struct {
	started      *prometheus.CounterVec
	discarded    prometheus.Counter
	completed    *prometheus.CounterVec
	scores       prometheus.Histogram
	coachReplies *prometheus.CounterVec
	httpStatus   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interviewprep_interviews_started_total",
			Help: "Interviews started, by mode.",
		}, []string{"mode"}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "interviewprep_interviews_discarded_total",
			Help: "In-progress interviews replaced by a new start.",
		}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interviewprep_interviews_completed_total",
			Help: "Interviews completed, by mode.",
		}, []string{"mode"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "interviewprep_interview_score",
			Help:    "Score of completed interviews.",
			Buckets: []float64{0, 20, 40, 50, 60, 70, 80, 90, 100},
		}),
		coachReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interviewprep_coach_replies_total",
			Help: "Coach replies delivered, by matched rule.",
		}, []string{"rule"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interviewprep_http_responses_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.started,
		c.discarded,
		c.completed,
		c.scores,
		c.coachReplies,
		c.httpStatus,
	)

	return c
}

func (c *Collector) InterviewStarted(interview *domain.Interview) {
	c.started.WithLabelValues(string(interview.Mode)).Inc()
}

func (c *Collector) InterviewDiscarded(*domain.Interview, int) {
	c.discarded.Inc()
}

func (c *Collector) InterviewCompleted(interview *domain.Interview, feedback domain.InterviewFeedback) {
	c.completed.WithLabelValues(string(interview.Mode)).Inc()
	c.scores.Observe(float64(feedback.OverallScore))
}

func (c *Collector) CoachReplied(rule string) {
	c.coachReplies.WithLabelValues(rule).Inc()
}

// RecordHTTPStatus counts one response with the given status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
