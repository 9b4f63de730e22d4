package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestQuizAttemptAnswersRoundTrip(t *testing.T) {
	attempt := &QuizAttempt{}

	in := []AttemptAnswer{
		{QuestionID: "q1", UserAnswer: "go", IsCorrect: true},
		{QuestionID: "q2", UserAnswer: "defer", IsCorrect: false},
	}
	require.NoError(t, attempt.SetAnswerValues(in))

	out, err := attempt.AnswerValues()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestQuizAttemptAnswersEmpty(t *testing.T) {
	attempt := &QuizAttempt{}

	out, err := attempt.AnswerValues()
	require.NoError(t, err)
	assert.Empty(t, out)
}

// Attempts must outlive their quiz: quiz_id is a NOT NULL historical
// reference, so the association may not emit a database constraint (an
// ON DELETE action would collide with the NOT NULL column).
func TestQuizAttemptQuizAssociationHasNoConstraint(t *testing.T) {
	s, err := schema.Parse(&QuizAttempt{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	rel, ok := s.Relationships.Relations["Quiz"]
	require.True(t, ok, "Quiz association missing")
	assert.Nil(t, rel.ParseConstraint())

	quizID := s.LookUpField("QuizID")
	require.NotNil(t, quizID)
	assert.True(t, quizID.NotNull)
}
