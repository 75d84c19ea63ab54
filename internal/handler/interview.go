package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/interview-prep/internal/domain"
	"github.com/msomdec/interview-prep/internal/service"
)

// InterviewHandler drives the caller's interview session.
type InterviewHandler struct {
	interviews *service.InterviewService
}

// NewInterviewHandler creates a new InterviewHandler.
func NewInterviewHandler(interviews *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

// HandleQuestions lists the bank's questions for a mode.
// GET /api/questions/{mode}
func (h *InterviewHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	mode := domain.InterviewMode(r.PathValue("mode"))
	questions, err := h.interviews.Questions(mode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Unknown interview mode.")
			return
		}
		serverError(w, "list questions", "mode", mode, "error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"mode":      mode,
		"questions": toQuestionDTOs(questions),
	})
}

// HandleQuestionSets lists the recommended practice sets.
// GET /api/question-sets
func (h *InterviewHandler) HandleQuestionSets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sets": h.interviews.RecommendedSets(),
	})
}

// HandleStart begins a new interview, replacing any in progress.
// POST /api/interview
// Request:  {"mode":"technical"}
// Response: 201 {"active":true,"interview":{...},...}
func (h *InterviewHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	mode := domain.InterviewMode(req.Mode)
	if !mode.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "Mode must be technical or behavioral.")
		return
	}

	session := h.interviews.SessionFor(user.ID)
	if err := session.Start(mode, user.ID); err != nil {
		serverError(w, "start interview", "user_id", user.ID, "mode", mode, "error", err)
		return
	}

	view, active := session.View()
	writeJSON(w, http.StatusCreated, toSessionDTO(view, active))
}

// HandleView returns the caller's session state.
// GET /api/interview
func (h *InterviewHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	view, active := h.interviews.SessionFor(user.ID).View()
	writeJSON(w, http.StatusOK, toSessionDTO(view, active))
}

// HandleAnswer records the current question's answer.
// POST /api/interview/answer
// Request: {"text":"..."}
func (h *InterviewHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	h.navigate(w, r, func(s *service.Session) { s.Answer(req.Text) })
}

// HandleNext advances to the next question.
// POST /api/interview/next
func (h *InterviewHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, (*service.Session).Next)
}

// HandlePrev moves back one question.
// POST /api/interview/prev
func (h *InterviewHandler) HandlePrev(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, (*service.Session).Prev)
}

// HandleSkip marks the current question skipped and advances.
// POST /api/interview/skip
func (h *InterviewHandler) HandleSkip(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, (*service.Session).Skip)
}

// HandleRetry clears the current answer.
// POST /api/interview/retry
func (h *InterviewHandler) HandleRetry(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, (*service.Session).Retry)
}

// navigate applies op to the caller's session and returns the new state.
// With no active interview op is a no-op and the response has active=false.
func (h *InterviewHandler) navigate(w http.ResponseWriter, r *http.Request, op func(*service.Session)) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	session := h.interviews.SessionFor(user.ID)
	op(session)
	view, active := session.View()
	writeJSON(w, http.StatusOK, toSessionDTO(view, active))
}

// HandleComplete scores and stores the active interview.
// POST /api/interview/complete
// Response: {"interview":{...},"feedback":{...}} or 409 when idle
func (h *InterviewHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	done, err := h.interviews.SessionFor(user.ID).Complete(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoActiveInterview):
			writeError(w, http.StatusConflict, "There is no interview in progress.")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found.")
		default:
			slog.Error("complete interview", "user_id", user.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "Your answers are kept. Please try completing again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"interview": toInterviewDTO(done.Interview),
		"feedback":  toFeedbackDTO(done.Feedback),
	})
}
