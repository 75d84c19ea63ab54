package service

import (
	"fmt"

	"github.com/msomdec/interview-prep/internal/domain"
)

const (
	strengthArticulate = "Demonstrated ability to articulate responses clearly"
	strengthAttempted  = "Attempted all questions"
	strengthCommitment = "Showed commitment to completing the interview process"

	areaDetailedExamples = "Work on providing more detailed examples in responses"
	areaSTARMethod       = "Practice structuring answers using the STAR method"
)

var feedbackTips = []string{
	"Review common interview questions for your role",
	"Practice with a timer to improve response timing",
	"Record yourself answering questions to improve delivery",
}

// GenerateFeedback scores an interview and selects the canned feedback
// clauses. It has no side effects.
func GenerateFeedback(interview *domain.Interview) domain.InterviewFeedback {
	answered, skipped := 0, 0
	for _, q := range interview.Questions {
		switch {
		case q.Skipped():
			skipped++
		case q.Answered():
			answered++
		}
	}

	strengths := make([]string, 0, 3)
	if answered > 0 {
		strengths = append(strengths, strengthArticulate)
	}
	if skipped == 0 {
		strengths = append(strengths, strengthAttempted)
	}
	strengths = append(strengths, strengthCommitment)

	areas := make([]string, 0, 3)
	if skipped > 0 {
		areas = append(areas, fmt.Sprintf("Consider practicing %s questions more", interview.Mode))
	}
	areas = append(areas, areaDetailedExamples, areaSTARMethod)

	tips := make([]string, len(feedbackTips))
	copy(tips, feedbackTips)

	return domain.InterviewFeedback{
		OverallScore:        Score(answered, len(interview.Questions)),
		Strengths:           strengths,
		AreasForImprovement: areas,
		Tips:                tips,
	}
}

// Score returns floor(100 * answered / total), or 0 for an empty interview.
func Score(answered, total int) int {
	if total <= 0 {
		return 0
	}
	return 100 * answered / total
}

// ScoreBand maps a score to its display band.
func ScoreBand(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Average"
	default:
		return "Needs Improvement"
	}
}

// FeedbackFromHistory builds the degraded feedback view shown when no fresh
// feedback is available: the most recent interview's score and empty lists.
func FeedbackFromHistory(user *domain.User) (domain.InterviewFeedback, error) {
	if len(user.Interviews) == 0 {
		return domain.InterviewFeedback{}, fmt.Errorf("%w: no interview history", domain.ErrNotFound)
	}

	last := user.Interviews[len(user.Interviews)-1]
	score := 0
	if last.Score != nil {
		score = *last.Score
	}
	return domain.InterviewFeedback{
		OverallScore:        score,
		Strengths:           []string{},
		AreasForImprovement: []string{},
		Tips:                []string{},
	}, nil
}
