package domain

import "time"

// InterviewMode selects which fixed question set an interview uses.
type InterviewMode string

const (
	ModeTechnical  InterviewMode = "technical"
	ModeBehavioral InterviewMode = "behavioral"
)

// Valid reports whether m is a known mode.
func (m InterviewMode) Valid() bool {
	return m == ModeTechnical || m == ModeBehavioral
}

type InterviewStatus string

const (
	InterviewStatusPending    InterviewStatus = "pending"
	InterviewStatusInProgress InterviewStatus = "in-progress"
	InterviewStatusCompleted  InterviewStatus = "completed"
)

// SkippedAnswer is the reserved answer value for a deliberately bypassed
// question. It is distinct from both an empty answer and a real answer.
const SkippedAnswer = "Skipped"

// QuestionCategory tags a question or a recommended set. Custom marks
// role-specific material.
type QuestionCategory string

const (
	CategoryFAANG      QuestionCategory = "faang"
	CategorySTAR       QuestionCategory = "star"
	CategoryTechnical  QuestionCategory = "technical"
	CategoryBehavioral QuestionCategory = "behavioral"
	CategoryCustom     QuestionCategory = "custom"
)

// QuestionCategories lists every valid QuestionCategory.
var QuestionCategories = []QuestionCategory{
	CategoryFAANG,
	CategorySTAR,
	CategoryTechnical,
	CategoryBehavioral,
	CategoryCustom,
}

// Valid reports whether c is one of QuestionCategories.
func (c QuestionCategory) Valid() bool {
	for _, known := range QuestionCategories {
		if c == known {
			return true
		}
	}
	return false
}

// QuestionSet is a recommended practice collection offered after an
// interview.
type QuestionSet struct {
	Category    QuestionCategory `json:"category"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
}

// Question is a single interview prompt. UserAnswer, Score and Feedback are
// only ever set on the copy embedded in an Interview.
type Question struct {
	ID             string           `json:"id"`
	Content        string           `json:"content"`
	Category       QuestionCategory `json:"category,omitempty"`
	ExpectedAnswer string           `json:"expectedAnswer,omitempty"`
	UserAnswer     string           `json:"userAnswer,omitempty"`
	Feedback       string           `json:"feedback,omitempty"`
	Score          *int             `json:"score,omitempty"`
}

// Answered reports whether the question holds a real answer.
func (q Question) Answered() bool {
	return q.UserAnswer != "" && q.UserAnswer != SkippedAnswer
}

// Skipped reports whether the question was deliberately skipped.
func (q Question) Skipped() bool {
	return q.UserAnswer == SkippedAnswer
}

// Interview is one run through a mode's question set. Once completed it is
// an immutable history record.
type Interview struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Mode        InterviewMode   `json:"mode"`
	Status      InterviewStatus `json:"status"`
	Questions   []Question      `json:"questions"`
	Score       *int            `json:"score,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// Clone returns a deep copy so that callers never alias session or store state.
func (i *Interview) Clone() *Interview {
	c := *i
	c.Questions = make([]Question, len(i.Questions))
	for qi, q := range i.Questions {
		if q.Score != nil {
			s := *q.Score
			q.Score = &s
		}
		c.Questions[qi] = q
	}
	if i.Score != nil {
		s := *i.Score
		c.Score = &s
	}
	if i.CompletedAt != nil {
		t := *i.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// InterviewFeedback is the derived, non-persisted summary computed at completion.
type InterviewFeedback struct {
	OverallScore        int      `json:"overallScore"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	Tips                []string `json:"tips"`
}
