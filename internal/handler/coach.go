package handler

import (
	"errors"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/interview-prep/internal/domain"
	"github.com/msomdec/interview-prep/internal/service"
	"github.com/msomdec/interview-prep/internal/view"
)

const coachHistoryLimit = 50

// CoachHandler serves the interview coach chat.
type CoachHandler struct {
	coach *service.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(coach *service.CoachService) *CoachHandler {
	return &CoachHandler{coach: coach}
}

// HandleGreeting returns the personalised opening message.
// GET /api/coach/greeting
func (h *CoachHandler) HandleGreeting(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": h.coach.Greeting(user)})
}

// HandleHistory returns the caller's recent coach conversation.
// GET /api/coach/messages
func (h *CoachHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	msgs, err := h.coach.History(r.Context(), user.ID, coachHistoryLimit)
	if err != nil {
		serverError(w, "coach history", "user_id", user.ID, "error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

// HandleSend streams the caller's message, a typing indicator and then the
// coach's reply as Datastar SSE patches.
// POST /api/coach/messages
// Signals: {"message":"..."}
func (h *CoachHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var signals struct {
		Message string `json:"message"`
	}
	if err := datastar.ReadSignals(r, &signals); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	sent, replies, err := h.coach.Send(r.Context(), user, signals.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusUnprocessableEntity, "Message must not be empty.")
		case errors.Is(err, domain.ErrRateLimited):
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "You're sending messages too quickly.")
		default:
			serverError(w, "coach send", "user_id", user.ID, "error", err)
		}
		return
	}

	sse := datastar.NewSSE(w, r)

	sse.PatchElementTempl(
		view.ChatMessageFragment(sent),
		datastar.WithSelectorID(view.ChatLogID),
		datastar.WithModeAppend(),
	)
	sse.MarshalAndPatchSignals(map[string]any{"message": ""})
	sse.PatchElementTempl(
		view.TypingIndicator(),
		datastar.WithSelectorID(view.ChatLogID),
		datastar.WithModeAppend(),
	)

	reply, ok := <-replies
	if !ok {
		// Client went away before the reply was ready.
		return
	}

	sse.RemoveElementByID(view.TypingID)
	sse.PatchElementTempl(
		view.ChatMessageFragment(reply),
		datastar.WithSelectorID(view.ChatLogID),
		datastar.WithModeAppend(),
	)
}
