package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/interview-prep/internal/domain"
	"github.com/msomdec/interview-prep/internal/service"
)

const (
	historyPageSize = 10
	maxHistoryPage  = 50
	dashboardRecent = 3
)

// ResultsHandler serves completed-interview results, history and stats.
type ResultsHandler struct {
	interviews *service.InterviewService
}

// NewResultsHandler creates a new ResultsHandler.
func NewResultsHandler(interviews *service.InterviewService) *ResultsHandler {
	return &ResultsHandler{interviews: interviews}
}

// HandleLatest returns feedback for the most recent interview, rebuilt
// from its stored score.
// GET /api/results
func (h *ResultsHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	fb, err := h.interviews.LatestFeedback(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No completed interviews yet.")
			return
		}
		serverError(w, "latest feedback", "user_id", user.ID, "error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"feedback": toFeedbackDTO(fb),
	})
}

// HandleReport downloads a plain-text report for one completed interview.
// GET /api/results/{id}/report
func (h *ResultsHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	interview, err := h.interviews.GetCompleted(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Interview not found.")
			return
		}
		serverError(w, "get interview for report", "user_id", user.ID, "error", err)
		return
	}

	report := service.RenderReport(interview, service.GenerateFeedback(interview))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="interview-%s.txt"`, interview.ID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(report)); err != nil {
		slog.Error("write report", "error", err)
	}
}

// HandleHistory returns completed interviews newest first.
// GET /api/history?limit=10&offset=0
func (h *ResultsHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	limit := queryInt(r, "limit", historyPageSize)
	if limit < 1 || limit > maxHistoryPage {
		limit = historyPageSize
	}
	offset := max(queryInt(r, "offset", 0), 0)

	interviews, total, err := h.interviews.History(r.Context(), user.ID, limit, offset)
	if err != nil {
		serverError(w, "interview history", "user_id", user.ID, "error", err)
		return
	}

	next := offset + len(interviews)
	writeJSON(w, http.StatusOK, map[string]any{
		"interviews": toInterviewDTOs(interviews),
		"total":      total,
		"nextOffset": next,
		"hasMore":    next < total,
	})
}

// HandleDashboard returns summary statistics and the latest interviews.
// GET /api/dashboard
func (h *ResultsHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	stats, err := h.interviews.Stats(r.Context(), user.ID)
	if err != nil {
		serverError(w, "dashboard stats", "user_id", user.ID, "error", err)
		return
	}

	recent, _, err := h.interviews.History(r.Context(), user.ID, dashboardRecent, 0)
	if err != nil {
		serverError(w, "dashboard recent interviews", "user_id", user.ID, "error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":   toUserDTO(user),
		"stats":  toStatsDTO(stats),
		"recent": toInterviewDTOs(recent),
	})
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}
