package services

import (
	"context"
	"time"

	"github.com/learnhub/quiz-service/internal/models"
	"github.com/learnhub/quiz-service/internal/repositories"
)

// ===== REQUEST STRUCTS =====

type GenerateQuizRequest struct {
	Title         string                 `json:"title" validate:"required,min=1,max=200"`
	Topic         string                 `json:"topic" validate:"required,min=1,max=200"`
	Description   string                 `json:"description" validate:"omitempty,max=1000"`
	Difficulty    models.DifficultyLevel `json:"difficulty" validate:"omitempty,difficulty_level"`
	QuestionCount int                    `json:"question_count" validate:"omitempty,min=1,max=20"`
}

type AnswerSubmission struct {
	QuestionID string `json:"question_id" validate:"required"`
	UserAnswer string `json:"user_answer"`
}

type SubmitAttemptRequest struct {
	QuizID string `json:"quiz_id" validate:"required"`
	// Answers may be empty but must be present; an absent list is a caller bug.
	Answers   []AnswerSubmission `json:"answers" validate:"required,dive"`
	TimeTaken int                `json:"time_taken" validate:"omitempty,min=0"` // Seconds
}

type ExplainAnswerRequest struct {
	Question      string `json:"question" validate:"required"`
	CorrectAnswer string `json:"correct_answer" validate:"required"`
	UserAnswer    string `json:"user_answer" validate:"required"`
}

// ===== RESPONSE STRUCTS =====

// QuizSummary is the listing/creation view of a quiz. It never carries
// question bodies.
type QuizSummary struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Topic         string                 `json:"topic"`
	Description   string                 `json:"description"`
	Difficulty    models.DifficultyLevel `json:"difficulty"`
	QuestionCount int                    `json:"question_count"`
	TimeLimit     int                    `json:"time_limit"`
}

// QuestionForTaking is the pre-submission view of a question. The struct has
// no correct-answer or explanation field at all, so the confidentiality rule
// holds by construction rather than by field stripping.
type QuestionForTaking struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type QuizForTaking struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Topic       string                 `json:"topic"`
	Description string                 `json:"description"`
	Difficulty  models.DifficultyLevel `json:"difficulty"`
	TimeLimit   int                    `json:"time_limit"`
	Questions   []QuestionForTaking    `json:"questions"`
}

// AnswerReview is the post-submission view of one processed answer; the
// correct answer and explanation are safe to reveal here.
type AnswerReview struct {
	QuestionID    string `json:"question_id"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

type AttemptResult struct {
	AttemptID      string         `json:"attempt_id"`
	Score          float64        `json:"score"`
	CorrectCount   int            `json:"correct_count"`
	TotalQuestions int            `json:"total_questions"`
	Answers        []AnswerReview `json:"answers"`
}

type AttemptQuizInfo struct {
	ID         string                 `json:"id"`
	Title      string                 `json:"title"`
	Topic      string                 `json:"topic"`
	Difficulty models.DifficultyLevel `json:"difficulty"`
}

type AttemptSummary struct {
	ID        string           `json:"id"`
	Quiz      *AttemptQuizInfo `json:"quiz"` // nil when the quiz no longer exists
	Score     float64          `json:"score"`
	TimeTaken int              `json:"time_taken"`
	Completed bool             `json:"completed"`
	CreatedAt time.Time        `json:"created_at"`
}

// ===== SERVICE INTERFACES =====

type QuizService interface {
	// Generate creates a quiz from generated content. Nothing is persisted
	// when generation fails or returns malformed questions.
	Generate(ctx context.Context, req *GenerateQuizRequest) (*QuizSummary, error)

	List(ctx context.Context) ([]*QuizSummary, error)

	// GetForTaking returns the answer-free view of a quiz.
	GetForTaking(ctx context.Context, id string) (*QuizForTaking, error)

	GetStats(ctx context.Context, id string) (*repositories.AttemptStats, error)
}

type AttemptService interface {
	// Submit scores a set of answers against a quiz, persists the attempt and
	// advances the caller's progress counter.
	Submit(ctx context.Context, req *SubmitAttemptRequest, userID string) (*AttemptResult, error)

	// GetByUser returns a user's attempt history, most recent first.
	GetByUser(ctx context.Context, userID string) ([]*AttemptSummary, error)

	// Explain generates an on-demand explanation; no caching, no persistence.
	Explain(ctx context.Context, req *ExplainAnswerRequest) (string, error)
}

type ExportService interface {
	ExportQuizResultsToExcel(ctx context.Context, quizID string) ([]byte, error)
	ExportQuizResultsToCSV(ctx context.Context, quizID string) ([]byte, error)
}

type ServiceManager interface {
	Quiz() QuizService
	Attempt() AttemptService
	Export() ExportService
}
