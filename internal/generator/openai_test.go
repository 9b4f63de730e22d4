package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeQuestionBatch(t *testing.T) {
	raw := `{"questions":[{"question":"What is 2+2?","options":["3","4","5","6"],"correct_answer":"4","explanation":"Basic addition."}]}`

	questions, err := decodeQuestionBatch(raw)
	assert.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.Equal(t, "What is 2+2?", questions[0].Question)
	assert.Equal(t, []string{"3", "4", "5", "6"}, questions[0].Options)
	assert.Equal(t, "4", questions[0].CorrectAnswer)
	assert.Equal(t, "Basic addition.", questions[0].Explanation)
}

func TestDecodeQuestionBatchMalformed(t *testing.T) {
	_, err := decodeQuestionBatch("not json at all")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "malformed question batch")
}

func TestDecodeQuestionBatchEmpty(t *testing.T) {
	questions, err := decodeQuestionBatch(`{"questions":[]}`)
	assert.NoError(t, err)
	assert.Empty(t, questions)
}
