package generator

import "context"

// GeneratedQuestion is the normalized question candidate returned by a
// content generator. Options are ordered; CorrectAnswer must match one of
// them exactly (enforced by the validator at quiz creation, not here).
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// ContentGenerator produces quiz content. Implementations are treated as
// opaque collaborators: callers never retry, and a failed call leaves no
// state behind.
type ContentGenerator interface {
	// GenerateQuestions returns `count` question candidates for a topic.
	GenerateQuestions(ctx context.Context, topic string, count int, difficulty string) ([]GeneratedQuestion, error)

	// Explain returns a free-text explanation of why the correct answer is
	// correct, contrasted with the user's answer.
	Explain(ctx context.Context, question, correctAnswer, userAnswer string) (string, error)
}
