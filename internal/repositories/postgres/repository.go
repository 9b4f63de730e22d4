package postgres

import (
	"github.com/learnhub/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	quiz    repositories.QuizRepository
	attempt repositories.AttemptRepository
	user    repositories.UserRepository
}

// NewRepository builds the GORM-backed repository aggregate.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		quiz:    NewQuizPostgreSQL(db),
		attempt: NewAttemptPostgreSQL(db),
		user:    NewUserPostgreSQL(db),
	}
}

func (r *gormRepository) Quiz() repositories.QuizRepository {
	return r.quiz
}

func (r *gormRepository) Attempt() repositories.AttemptRepository {
	return r.attempt
}

func (r *gormRepository) User() repositories.UserRepository {
	return r.user
}
