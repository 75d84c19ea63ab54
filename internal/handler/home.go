package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/interview-prep/internal/domain"
	"github.com/msomdec/interview-prep/internal/service"
	"github.com/msomdec/interview-prep/internal/view"
)

// HomeHandler renders the landing page.
type HomeHandler struct {
	coach *service.CoachService
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(coach *service.CoachService) *HomeHandler {
	return &HomeHandler{coach: coach}
}

// HandleHome renders the home page. Signed-in users get the coach chat
// seeded with the greeting and their recent conversation.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var messages []domain.ChatMessage
	if user != nil {
		messages = append(messages, h.coach.Greeting(user))
		history, err := h.coach.History(r.Context(), user.ID, coachHistoryLimit)
		if err != nil {
			slog.Error("coach history for home", "user_id", user.ID, "error", err)
		}
		messages = append(messages, history...)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.HomePage(user, messages).Render(r.Context(), w); err != nil {
		slog.Error("render home", "error", err)
	}
}
