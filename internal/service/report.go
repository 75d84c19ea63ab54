package service

import (
	"fmt"
	"strings"

	"github.com/msomdec/interview-prep/internal/domain"
)

// RenderReport renders a completed interview and its feedback as a plain
// text report suitable for download.
func RenderReport(interview *domain.Interview, feedback domain.InterviewFeedback) string {
	if interview == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Interview Report\n", titleCase(string(interview.Mode)))
	if interview.CompletedAt != nil {
		fmt.Fprintf(&b, "Completed: %s\n", interview.CompletedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	fmt.Fprintf(&b, "Score: %d%% (%s)\n", feedback.OverallScore, ScoreBand(feedback.OverallScore))

	writeSection(&b, "Strengths", feedback.Strengths)
	writeSection(&b, "Areas for Improvement", feedback.AreasForImprovement)
	writeSection(&b, "Tips", feedback.Tips)

	b.WriteString("\nQuestions\n")
	for i, q := range interview.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Content)
		answer := q.UserAnswer
		if answer == "" {
			answer = "(no answer)"
		}
		fmt.Fprintf(&b, "   Answer: %s\n", answer)
	}

	return b.String()
}

func writeSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
