package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/quiz-service/internal/generator"
)

func validQuestion() generator.GeneratedQuestion {
	return generator.GeneratedQuestion{
		Question:      "Which keyword starts a goroutine?",
		Options:       []string{"go", "run", "spawn", "async"},
		CorrectAnswer: "go",
		Explanation:   "The go statement starts a new goroutine.",
	}
}

func TestValidateGenerated(t *testing.T) {
	v := NewQuestionValidator()

	q := validQuestion()
	require.NoError(t, v.ValidateGenerated(&q))

	q = validQuestion()
	q.Question = ""
	assert.Error(t, v.ValidateGenerated(&q))

	q = validQuestion()
	q.Options = []string{"go"}
	assert.Error(t, v.ValidateGenerated(&q))

	q = validQuestion()
	q.CorrectAnswer = ""
	assert.Error(t, v.ValidateGenerated(&q))

	q = validQuestion()
	q.CorrectAnswer = "defer"
	err := v.ValidateGenerated(&q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not one of the options")

	// Matching is exact; a case-mismatched correct answer is rejected.
	q = validQuestion()
	q.CorrectAnswer = "Go"
	assert.Error(t, v.ValidateGenerated(&q))
}

func TestValidateBatch(t *testing.T) {
	v := NewQuestionValidator()

	batch := []generator.GeneratedQuestion{validQuestion(), validQuestion()}
	require.NoError(t, v.ValidateBatch(batch, 2))

	err := v.ValidateBatch(batch, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3 questions")

	batch[1].Options = nil
	err = v.ValidateBatch(batch, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question 2")
}

func TestValidate_DifficultyLevel(t *testing.T) {
	v := New()

	type req struct {
		Difficulty string `json:"difficulty" validate:"omitempty,difficulty_level"`
	}

	assert.NoError(t, v.Validate(&req{Difficulty: "medium"}))
	assert.NoError(t, v.Validate(&req{}))

	err := v.Validate(&req{Difficulty: "impossible"})
	require.Error(t, err)
	// Field names in errors come from json tags.
	assert.Contains(t, err.Error(), "difficulty")
}
