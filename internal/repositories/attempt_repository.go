package repositories

import (
	"context"

	"github.com/learnhub/quiz-service/internal/models"
)

// AttemptRepository interface for quiz attempt operations. Attempts are
// created exactly once per submission and never updated or deleted.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, id string) (*models.QuizAttempt, error)

	// GetByUser returns a user's attempts most-recent-first, each with its
	// quiz preloaded (nil when the quiz row no longer exists).
	GetByUser(ctx context.Context, userID string) ([]*models.QuizAttempt, error)

	// GetByQuiz returns all attempts for a quiz most-recent-first.
	GetByQuiz(ctx context.Context, quizID string) ([]*models.QuizAttempt, error)

	// GetStats aggregates attempt counts and scores for a quiz.
	GetStats(ctx context.Context, quizID string) (*AttemptStats, error)
}
