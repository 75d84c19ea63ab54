package handler

import (
	"net/http"

	"github.com/msomdec/interview-prep/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. metrics may be
// nil to leave /metrics unregistered.
func RegisterRoutes(
	mux *http.ServeMux,
	db Pinger,
	auth *service.AuthService,
	interviews *service.InterviewService,
	coach *service.CoachService,
	authLimiter *service.KeyedLimiter,
	metrics http.Handler,
	cookieSecure bool,
) {
	authH := NewAuthHandler(auth, cookieSecure)
	interviewH := NewInterviewHandler(interviews)
	resultsH := NewResultsHandler(interviews)
	coachH := NewCoachHandler(coach)
	homeH := NewHomeHandler(coach)

	protected := func(fn http.HandlerFunc) http.Handler {
		return RequireAuth(auth, fn)
	}
	limited := func(fn http.HandlerFunc) http.Handler {
		if authLimiter == nil {
			return fn
		}
		return RateLimit(authLimiter, fn)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /readyz", Readyz(db))
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	mux.Handle("GET /{$}", OptionalAuth(auth, http.HandlerFunc(homeH.HandleHome)))

	// Auth
	mux.Handle("POST /api/auth/register", limited(authH.HandleRegister))
	mux.Handle("POST /api/auth/login", limited(authH.HandleLogin))
	mux.HandleFunc("POST /api/auth/logout", authH.HandleLogout)
	mux.Handle("GET /api/auth/me", protected(authH.HandleMe))

	// Profile
	mux.Handle("PUT /api/profile", protected(authH.HandleUpdateProfile))
	mux.HandleFunc("GET /api/profile/roles", authH.HandleJobRoles)

	// Interview session
	mux.Handle("GET /api/questions/{mode}", protected(interviewH.HandleQuestions))
	mux.Handle("GET /api/question-sets", protected(interviewH.HandleQuestionSets))
	mux.Handle("POST /api/interview", protected(interviewH.HandleStart))
	mux.Handle("GET /api/interview", protected(interviewH.HandleView))
	mux.Handle("POST /api/interview/answer", protected(interviewH.HandleAnswer))
	mux.Handle("POST /api/interview/next", protected(interviewH.HandleNext))
	mux.Handle("POST /api/interview/prev", protected(interviewH.HandlePrev))
	mux.Handle("POST /api/interview/skip", protected(interviewH.HandleSkip))
	mux.Handle("POST /api/interview/retry", protected(interviewH.HandleRetry))
	mux.Handle("POST /api/interview/complete", protected(interviewH.HandleComplete))

	// Results
	mux.Handle("GET /api/results", protected(resultsH.HandleLatest))
	mux.Handle("GET /api/results/{id}/report", protected(resultsH.HandleReport))
	mux.Handle("GET /api/history", protected(resultsH.HandleHistory))
	mux.Handle("GET /api/dashboard", protected(resultsH.HandleDashboard))

	// Coach
	mux.Handle("GET /api/coach/greeting", protected(coachH.HandleGreeting))
	mux.Handle("GET /api/coach/messages", protected(coachH.HandleHistory))
	mux.Handle("POST /api/coach/messages", protected(coachH.HandleSend))
}
