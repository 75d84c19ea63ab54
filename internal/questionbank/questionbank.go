// Package questionbank holds the fixed, per-mode interview question sets.
package questionbank

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/msomdec/interview-prep/internal/domain"
)

//go:embed questions.yaml
var defaultQuestions []byte

type file struct {
	Modes map[domain.InterviewMode][]entry `yaml:"modes"`
	Sets  []setEntry                       `yaml:"sets"`
}

type setEntry struct {
	Category    string `yaml:"category"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type entry struct {
	ID             string `yaml:"id"`
	Content        string `yaml:"content"`
	Category       string `yaml:"category"`
	ExpectedAnswer string `yaml:"expected_answer"`
}

// Bank is an immutable set of question lists keyed by mode.
// It is safe for concurrent use.
type Bank struct {
	modes map[domain.InterviewMode][]domain.Question
	sets  []domain.QuestionSet
}

// Default returns the bank built into the binary.
func Default() *Bank {
	b, err := Parse(defaultQuestions)
	if err != nil {
		panic(fmt.Sprintf("questionbank: embedded questions are invalid: %v", err))
	}
	return b
}

// Load reads a bank from a YAML file on disk.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML question bank.
func Parse(data []byte) (*Bank, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	b := &Bank{modes: make(map[domain.InterviewMode][]domain.Question, len(f.Modes))}
	for mode, entries := range f.Modes {
		if !mode.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
		}
		if len(entries) == 0 {
			return nil, fmt.Errorf("%w: mode %q has no questions", domain.ErrInvalidInput, mode)
		}

		seen := make(map[string]bool, len(entries))
		questions := make([]domain.Question, 0, len(entries))
		for i, e := range entries {
			if e.ID == "" || e.Content == "" {
				return nil, fmt.Errorf("%w: %s question %d needs id and content", domain.ErrInvalidInput, mode, i+1)
			}
			if seen[e.ID] {
				return nil, fmt.Errorf("%w: duplicate question id %q", domain.ErrInvalidInput, e.ID)
			}
			seen[e.ID] = true

			// Untagged questions take the category named after their mode.
			category := domain.QuestionCategory(e.Category)
			if category == "" {
				category = domain.QuestionCategory(mode)
			}
			if !category.Valid() {
				return nil, fmt.Errorf("%w: question %q has unknown category %q", domain.ErrInvalidInput, e.ID, e.Category)
			}
			questions = append(questions, domain.Question{
				ID:             e.ID,
				Content:        e.Content,
				Category:       category,
				ExpectedAnswer: e.ExpectedAnswer,
			})
		}
		b.modes[mode] = questions
	}

	for _, mode := range []domain.InterviewMode{domain.ModeTechnical, domain.ModeBehavioral} {
		if _, ok := b.modes[mode]; !ok {
			return nil, fmt.Errorf("%w: mode %q is missing", domain.ErrInvalidInput, mode)
		}
	}

	seenSets := make(map[domain.QuestionCategory]bool, len(f.Sets))
	for i, e := range f.Sets {
		category := domain.QuestionCategory(e.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("%w: set %d has unknown category %q", domain.ErrInvalidInput, i+1, e.Category)
		}
		if e.Title == "" {
			return nil, fmt.Errorf("%w: set %d needs a title", domain.ErrInvalidInput, i+1)
		}
		if seenSets[category] {
			return nil, fmt.Errorf("%w: duplicate set category %q", domain.ErrInvalidInput, category)
		}
		seenSets[category] = true
		b.sets = append(b.sets, domain.QuestionSet{
			Category:    category,
			Title:       e.Title,
			Description: e.Description,
		})
	}
	return b, nil
}

// RecommendedSets returns a copy of the bank's recommended practice sets in
// file order.
func (b *Bank) RecommendedSets() []domain.QuestionSet {
	out := make([]domain.QuestionSet, len(b.sets))
	copy(out, b.sets)
	return out
}

// QuestionsForMode returns a fresh copy of the ordered questions for mode.
// Mutating the result never affects the bank or other callers.
func (b *Bank) QuestionsForMode(mode domain.InterviewMode) ([]domain.Question, error) {
	questions, ok := b.modes[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
	}
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out, nil
}

// Modes returns the modes the bank serves.
func (b *Bank) Modes() []domain.InterviewMode {
	out := make([]domain.InterviewMode, 0, len(b.modes))
	for _, m := range []domain.InterviewMode{domain.ModeTechnical, domain.ModeBehavioral} {
		if _, ok := b.modes[m]; ok {
			out = append(out, m)
		}
	}
	return out
}
