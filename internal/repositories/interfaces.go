package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Repository aggregates all persistence interfaces.
type Repository interface {
	Quiz() QuizRepository
	Attempt() AttemptRepository
	User() UserRepository
}

// IsNotFoundError reports whether err represents a missing record.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ===== SHARED STATISTICS STRUCTS =====

type AttemptStats struct {
	TotalAttempts    int     `json:"total_attempts"`
	AverageScore     float64 `json:"average_score"`
	BestScore        float64 `json:"best_score"`
	AverageTimeTaken int     `json:"average_time_taken"`
}
