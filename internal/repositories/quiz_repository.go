package repositories

import (
	"context"

	"github.com/learnhub/quiz-service/internal/models"
)

// QuizRepository interface for quiz operations. Quizzes are immutable after
// creation: there is no update or delete.
type QuizRepository interface {
	// Create persists a quiz and its questions in one transaction.
	Create(ctx context.Context, quiz *models.Quiz) error

	// GetByID loads a quiz with its questions ordered by position.
	GetByID(ctx context.Context, id string) (*models.Quiz, error)

	// List returns all quizzes with their questions. Full scan; no pagination.
	List(ctx context.Context) ([]*models.Quiz, error)

	// ExistsByID reports whether a quiz with the given ID exists without
	// loading it.
	ExistsByID(ctx context.Context, id string) (bool, error)
}
