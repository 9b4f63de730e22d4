package validator

import (
	"fmt"

	"github.com/learnhub/quiz-service/internal/generator"
)

const minOptionsPerQuestion = 2

// QuestionValidator checks generated question content before it is persisted.
// The content generator is trusted for style, not for structure: a question
// whose correct answer is not among its options can never be scored, so it is
// rejected here rather than stored.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateGenerated validates one generated question.
func (v *QuestionValidator) ValidateGenerated(q *generator.GeneratedQuestion) error {
	if q.Question == "" {
		return fmt.Errorf("question text is required")
	}

	if len(q.Options) < minOptionsPerQuestion {
		return fmt.Errorf("question must have at least %d options, got %d", minOptionsPerQuestion, len(q.Options))
	}

	if q.CorrectAnswer == "" {
		return fmt.Errorf("correct answer is required")
	}

	for _, option := range q.Options {
		if option == q.CorrectAnswer {
			return nil
		}
	}
	return fmt.Errorf("correct answer %q is not one of the options", q.CorrectAnswer)
}

// ValidateBatch validates a generated question batch and its size against the
// requested count. A short or malformed batch fails as a whole.
func (v *QuestionValidator) ValidateBatch(questions []generator.GeneratedQuestion, expectedCount int) error {
	if len(questions) != expectedCount {
		return fmt.Errorf("expected %d questions, generator returned %d", expectedCount, len(questions))
	}

	for i := range questions {
		if err := v.ValidateGenerated(&questions[i]); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
	}

	return nil
}
