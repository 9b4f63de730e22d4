package repositories

import (
	"context"

	"github.com/learnhub/quiz-service/internal/models"
)

// UserRepository interface for user operations (the quiz service is not the
// owner of user data; it only reads profiles and advances the progress
// counter).
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)

	// IncrementQuizCompletion advances the progress counter by step, clamped
	// at cap, as a single conditional update. Concurrent submissions by the
	// same user must not lose increments.
	IncrementQuizCompletion(ctx context.Context, userID string, step, cap int) error
}
