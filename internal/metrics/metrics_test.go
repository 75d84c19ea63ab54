package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/msomdec/interview-prep/internal/domain"
)

func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	if c := NewCollector(reg); c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

func TestInterviewLifecycle_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	tech := &domain.Interview{Mode: domain.ModeTechnical}
	beh := &domain.Interview{Mode: domain.ModeBehavioral}

	c.InterviewStarted(tech)
	c.InterviewStarted(tech)
	c.InterviewStarted(beh)
	c.InterviewDiscarded(tech, 2)
	c.InterviewCompleted(tech, domain.InterviewFeedback{OverallScore: 80})

	if got := testutil.ToFloat64(c.started.WithLabelValues("technical")); got != 2 {
		t.Errorf("started{technical} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.started.WithLabelValues("behavioral")); got != 1 {
		t.Errorf("started{behavioral} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.discarded); got != 1 {
		t.Errorf("discarded = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.completed.WithLabelValues("technical")); got != 1 {
		t.Errorf("completed{technical} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(c.scores); got != 1 {
		t.Errorf("score histogram series = %d, want 1", got)
	}
}

func TestCoachReplied_ByRule(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.CoachReplied("thanks")
	c.CoachReplied("thanks")
	c.CoachReplied("default")

	if got := testutil.ToFloat64(c.coachReplies.WithLabelValues("thanks")); got != 2 {
		t.Errorf("coach_replies{thanks} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.coachReplies.WithLabelValues("default")); got != 1 {
		t.Errorf("coach_replies{default} = %v, want 1", got)
	}
}

func TestRecordHTTPStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(409)
	c.RecordHTTPStatus(200)

	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("200")); got != 2 {
		t.Errorf("http_responses{200} = %v, want 2", got)
	}
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.InterviewStarted(&domain.Interview{Mode: domain.ModeTechnical})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `interviewprep_interviews_started_total{mode="technical"} 1`) {
		t.Errorf("response missing started counter:\n%s", body)
	}
}
