package handler

import (
	"time"

	"github.com/msomdec/interview-prep/internal/domain"
	"github.com/msomdec/interview-prep/internal/service"
)

// UserDTO is the JSON representation of a user. The password hash and the
// interview history are never included.
type UserDTO struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Domain    string `json:"domain"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      string(u.Role),
		Domain:    u.Domain,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// QuestionDTO is the JSON representation of a question.
type QuestionDTO struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	UserAnswer string `json:"userAnswer"`
	Skipped    bool   `json:"skipped"`
}

func toQuestionDTOs(qs []domain.Question) []QuestionDTO {
	dtos := make([]QuestionDTO, len(qs))
	for i, q := range qs {
		dtos[i] = QuestionDTO{
			ID:         q.ID,
			Content:    q.Content,
			Category:   string(q.Category),
			UserAnswer: q.UserAnswer,
			Skipped:    q.Skipped(),
		}
	}
	return dtos
}

// InterviewDTO is the JSON representation of an interview.
type InterviewDTO struct {
	ID          string        `json:"id"`
	Mode        string        `json:"mode"`
	Status      string        `json:"status"`
	Questions   []QuestionDTO `json:"questions"`
	Score       *int          `json:"score"`
	ScoreBand   string        `json:"scoreBand,omitempty"`
	CreatedAt   string        `json:"createdAt"`
	CompletedAt *string       `json:"completedAt"`
}

func toInterviewDTO(iv *domain.Interview) InterviewDTO {
	dto := InterviewDTO{
		ID:        iv.ID,
		Mode:      string(iv.Mode),
		Status:    string(iv.Status),
		Questions: toQuestionDTOs(iv.Questions),
		Score:     iv.Score,
		CreatedAt: iv.CreatedAt.Format(time.RFC3339),
	}
	if iv.Score != nil {
		dto.ScoreBand = service.ScoreBand(*iv.Score)
	}
	if iv.CompletedAt != nil {
		s := iv.CompletedAt.Format(time.RFC3339)
		dto.CompletedAt = &s
	}
	return dto
}

func toInterviewDTOs(ivs []domain.Interview) []InterviewDTO {
	dtos := make([]InterviewDTO, len(ivs))
	for i := range ivs {
		dtos[i] = toInterviewDTO(&ivs[i])
	}
	return dtos
}

// FeedbackDTO is the JSON representation of interview feedback.
type FeedbackDTO struct {
	OverallScore        int      `json:"overallScore"`
	ScoreBand           string   `json:"scoreBand"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	Tips                []string `json:"tips"`
}

func toFeedbackDTO(fb domain.InterviewFeedback) FeedbackDTO {
	return FeedbackDTO{
		OverallScore:        fb.OverallScore,
		ScoreBand:           service.ScoreBand(fb.OverallScore),
		Strengths:           nonNil(fb.Strengths),
		AreasForImprovement: nonNil(fb.AreasForImprovement),
		Tips:                nonNil(fb.Tips),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// SessionDTO is the JSON representation of the caller's interview session.
// Interview is nil when no interview is active.
type SessionDTO struct {
	Active         bool          `json:"active"`
	Interview      *InterviewDTO `json:"interview,omitempty"`
	CurrentIndex   int           `json:"currentIndex"`
	IsLastQuestion bool          `json:"isLastQuestion"`
}

func toSessionDTO(v service.SessionView, active bool) SessionDTO {
	if !active {
		return SessionDTO{}
	}
	iv := toInterviewDTO(v.Interview)
	return SessionDTO{
		Active:         true,
		Interview:      &iv,
		CurrentIndex:   v.CurrentIndex,
		IsLastQuestion: v.IsLastQuestion,
	}
}

// StatsDTO is the JSON representation of dashboard statistics.
type StatsDTO struct {
	Completed    int `json:"completed"`
	Technical    int `json:"technical"`
	Behavioral   int `json:"behavioral"`
	AverageScore int `json:"averageScore"`
	BestScore    int `json:"bestScore"`
}

func toStatsDTO(s service.DashboardStats) StatsDTO {
	return StatsDTO{
		Completed:    s.Completed,
		Technical:    s.Technical,
		Behavioral:   s.Behavioral,
		AverageScore: s.AverageScore,
		BestScore:    s.BestScore,
	}
}
