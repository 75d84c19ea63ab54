package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/interview-prep/internal/domain"
)

// QuestionSource supplies the ordered questions for a mode.
type QuestionSource interface {
	QuestionsForMode(mode domain.InterviewMode) ([]domain.Question, error)
}

// ActiveInterview is the in-progress variant of a session: an interview
// together with its current-question pointer. Its methods assume an
// interview exists, so they never need a nil check.
type ActiveInterview struct {
	interview *domain.Interview
	index     int
}

// Interview returns a copy of the in-progress interview.
func (a *ActiveInterview) Interview() *domain.Interview {
	return a.interview.Clone()
}

// Index returns the 0-based position of the current question.
func (a *ActiveInterview) Index() int {
	return a.index
}

// Current returns the question at the current position.
func (a *ActiveInterview) Current() domain.Question {
	return a.interview.Questions[a.index]
}

// Answer overwrites the current question's answer.
func (a *ActiveInterview) Answer(text string) {
	a.interview.Questions[a.index].UserAnswer = text
}

// Next advances to the following question. No-op at the last question.
func (a *ActiveInterview) Next() {
	if a.index < len(a.interview.Questions)-1 {
		a.index++
	}
}

// Prev moves back one question. No-op at the first question.
func (a *ActiveInterview) Prev() {
	if a.index > 0 {
		a.index--
	}
}

// Skip marks the current question as skipped, then advances like Next.
func (a *ActiveInterview) Skip() {
	a.interview.Questions[a.index].UserAnswer = domain.SkippedAnswer
	a.Next()
}

// Retry clears the current answer without moving.
func (a *ActiveInterview) Retry() {
	a.interview.Questions[a.index].UserAnswer = ""
}

// IsLastQuestion reports whether the pointer is on the final question.
func (a *ActiveInterview) IsLastQuestion() bool {
	return a.index == len(a.interview.Questions)-1
}

// answeredCount returns the number of real answers given so far.
func (a *ActiveInterview) answeredCount() int {
	n := 0
	for _, q := range a.interview.Questions {
		if q.Answered() {
			n++
		}
	}
	return n
}

// SessionView is a point-in-time copy of an active session for display.
type SessionView struct {
	Interview      *domain.Interview
	CurrentIndex   int
	IsLastQuestion bool
}

// Completion is the result of finishing an interview.
type Completion struct {
	Interview *domain.Interview
	Feedback  domain.InterviewFeedback
}

// Session is an explicit handle on one interview flow. It holds either no
// interview or exactly one ActiveInterview. Navigation and answer calls
// are silently ignored when nothing is active; Complete is not.
// A Session is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	active    *ActiveInterview
	questions QuestionSource
	users     domain.UserRepository
	observer  SessionObserver
}

// NewSession creates an empty session. A nil observer is allowed.
func NewSession(questions QuestionSource, users domain.UserRepository, observer SessionObserver) *Session {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Session{questions: questions, users: users, observer: observer}
}

// Start begins a new interview for the owner, replacing any interview that
// is still in progress. The questions are a private copy of the bank's.
func (s *Session) Start(mode domain.InterviewMode, ownerUserID string) error {
	questions, err := s.questions.QuestionsForMode(mode)
	if err != nil {
		return fmt.Errorf("questions for mode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		s.observer.InterviewDiscarded(s.active.interview, s.active.answeredCount())
	}

	interview := &domain.Interview{
		ID:        uuid.NewString(),
		UserID:    ownerUserID,
		Mode:      mode,
		Status:    domain.InterviewStatusInProgress,
		Questions: questions,
		CreatedAt: time.Now().UTC(),
	}
	s.active = &ActiveInterview{interview: interview}
	s.observer.InterviewStarted(interview)
	return nil
}

// withActive runs fn against the active interview, if there is one.
func (s *Session) withActive(fn func(a *ActiveInterview)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		fn(s.active)
	}
}

// Answer records text as the current question's answer.
func (s *Session) Answer(text string) {
	s.withActive(func(a *ActiveInterview) { a.Answer(text) })
}

// Next advances to the next question.
func (s *Session) Next() {
	s.withActive((*ActiveInterview).Next)
}

// Prev moves back one question.
func (s *Session) Prev() {
	s.withActive((*ActiveInterview).Prev)
}

// Skip marks the current question skipped and advances.
func (s *Session) Skip() {
	s.withActive((*ActiveInterview).Skip)
}

// Retry clears the current answer.
func (s *Session) Retry() {
	s.withActive((*ActiveInterview).Retry)
}

// IsLastQuestion is false when no interview is active.
func (s *Session) IsLastQuestion() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil && s.active.IsLastQuestion()
}

// CurrentIndex returns the current question pointer, 0 when idle.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return 0
	}
	return s.active.index
}

func (s *Session) idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active == nil
}

// View returns a copy of the active session state, or false when idle.
func (s *Session) View() (SessionView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return SessionView{}, false
	}
	return SessionView{
		Interview:      s.active.Interview(),
		CurrentIndex:   s.active.index,
		IsLastQuestion: s.active.IsLastQuestion(),
	}, true
}

// Complete scores the active interview, freezes it, appends it to the
// owner's history and clears the session. If persisting fails the
// interview stays active so that no answers are lost.
func (s *Session) Complete(ctx context.Context) (*Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, domain.ErrNoActiveInterview
	}

	owner := s.active.interview.UserID
	if _, err := s.users.GetByID(ctx, owner); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get interview owner: %w", err)
	}

	feedback := GenerateFeedback(s.active.interview)

	completed := s.active.interview.Clone()
	now := time.Now().UTC()
	score := feedback.OverallScore
	completed.Status = domain.InterviewStatusCompleted
	completed.Score = &score
	completed.CompletedAt = &now

	if err := s.users.AppendInterview(ctx, owner, completed); err != nil {
		return nil, fmt.Errorf("append interview: %w", err)
	}

	s.active = nil
	s.observer.InterviewCompleted(completed, feedback)

	return &Completion{Interview: completed.Clone(), Feedback: feedback}, nil
}

// InterviewService hands out one Session per user and answers questions
// about a user's completed interviews. Sessions without an active
// interview are dropped by PruneIdle once unused for long enough.
type InterviewService struct {
	mu        sync.Mutex
	sessions  map[string]*sessionEntry
	questions QuestionSource
	users     domain.UserRepository
	observer  SessionObserver
}

// NewInterviewService creates a new InterviewService. A nil observer is allowed.
func NewInterviewService(questions QuestionSource, users domain.UserRepository, observer SessionObserver) *InterviewService {
	if observer == nil {
		observer = NopObserver{}
	}
	return &InterviewService{
		sessions:  make(map[string]*sessionEntry),
		questions: questions,
		users:     users,
		observer:  observer,
	}
}

type sessionEntry struct {
	session  *Session
	lastUsed time.Time
}

// SessionFor returns the session handle owned by userID, creating it on
// first use.
func (s *InterviewService) SessionFor(userID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[userID]
	if !ok {
		e = &sessionEntry{session: NewSession(s.questions, s.users, s.observer)}
		s.sessions[userID] = e
	}
	e.lastUsed = time.Now()
	return e.session
}

// PruneIdle forgets sessions that hold no active interview and were last
// handed out before cutoff. Sessions with an interview in progress are
// kept. It returns the number removed.
func (s *InterviewService) PruneIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, e := range s.sessions {
		if e.lastUsed.Before(cutoff) && e.session.idle() {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}

// RunJanitor calls PruneIdle every interval for sessions unused for idleFor,
// until ctx is done.
func (s *InterviewService) RunJanitor(ctx context.Context, interval, idleFor time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.PruneIdle(now.Add(-idleFor)); n > 0 {
				slog.Debug("pruned idle interview sessions", "count", n)
			}
		}
	}
}

// Questions returns the bank's questions for mode.
func (s *InterviewService) Questions(mode domain.InterviewMode) ([]domain.Question, error) {
	return s.questions.QuestionsForMode(mode)
}

// RecommendedSets returns the practice sets offered after an interview, or
// an empty list when the question source has none.
func (s *InterviewService) RecommendedSets() []domain.QuestionSet {
	src, ok := s.questions.(interface {
		RecommendedSets() []domain.QuestionSet
	})
	if !ok {
		return []domain.QuestionSet{}
	}
	return src.RecommendedSets()
}

// GetCompleted returns one interview from the user's history.
func (s *InterviewService) GetCompleted(ctx context.Context, userID, interviewID string) (*domain.Interview, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range user.Interviews {
		if user.Interviews[i].ID == interviewID {
			return user.Interviews[i].Clone(), nil
		}
	}
	return nil, fmt.Errorf("interview %w", domain.ErrNotFound)
}

// LatestFeedback returns the degraded feedback view for the user's most
// recent interview.
func (s *InterviewService) LatestFeedback(ctx context.Context, userID string) (domain.InterviewFeedback, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.InterviewFeedback{}, err
	}
	return FeedbackFromHistory(user)
}
