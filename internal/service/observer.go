package service

import (
	"log/slog"

	"github.com/msomdec/interview-prep/internal/domain"
)

// SessionObserver is notified of interview lifecycle events.
type SessionObserver interface {
	InterviewStarted(interview *domain.Interview)
	// InterviewDiscarded fires when Start replaces an interview that was
	// still in progress. answered is how many real answers were lost.
	InterviewDiscarded(interview *domain.Interview, answered int)
	InterviewCompleted(interview *domain.Interview, feedback domain.InterviewFeedback)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) InterviewStarted(*domain.Interview)                              {}
func (NopObserver) InterviewDiscarded(*domain.Interview, int)                       {}
func (NopObserver) InterviewCompleted(*domain.Interview, domain.InterviewFeedback) {}

// LogObserver writes lifecycle events to slog.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o LogObserver) InterviewStarted(interview *domain.Interview) {
	o.logger().Info("interview started",
		"interview_id", interview.ID,
		"user_id", interview.UserID,
		"mode", interview.Mode,
		"questions", len(interview.Questions),
	)
}

func (o LogObserver) InterviewDiscarded(interview *domain.Interview, answered int) {
	o.logger().Warn("in-progress interview discarded by a new start",
		"interview_id", interview.ID,
		"user_id", interview.UserID,
		"answered", answered,
	)
}

func (o LogObserver) InterviewCompleted(interview *domain.Interview, feedback domain.InterviewFeedback) {
	o.logger().Info("interview completed",
		"interview_id", interview.ID,
		"user_id", interview.UserID,
		"mode", interview.Mode,
		"score", feedback.OverallScore,
	)
}

// Observers fans every event out to each observer in order.
type Observers []SessionObserver

func (obs Observers) InterviewStarted(interview *domain.Interview) {
	for _, o := range obs {
		o.InterviewStarted(interview)
	}
}

func (obs Observers) InterviewDiscarded(interview *domain.Interview, answered int) {
	for _, o := range obs {
		o.InterviewDiscarded(interview, answered)
	}
}

func (obs Observers) InterviewCompleted(interview *domain.Interview, feedback domain.InterviewFeedback) {
	for _, o := range obs {
		o.InterviewCompleted(interview, feedback)
	}
}
