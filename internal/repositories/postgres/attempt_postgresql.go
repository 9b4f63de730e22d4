package postgres

import (
	"context"
	"errors"

	"github.com/learnhub/quiz-service/internal/models"
	"github.com/learnhub/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a AttemptPostgreSQL) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	return a.db.WithContext(ctx).Create(attempt).Error
}

func (a AttemptPostgreSQL) GetByID(ctx context.Context, id string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	if err := a.db.WithContext(ctx).First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a AttemptPostgreSQL) GetByUser(ctx context.Context, userID string) ([]*models.QuizAttempt, error) {
	var attempts []*models.QuizAttempt
	if err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Quiz").
		Order("created_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (a AttemptPostgreSQL) GetByQuiz(ctx context.Context, quizID string) ([]*models.QuizAttempt, error) {
	var attempts []*models.QuizAttempt
	if err := a.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("created_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (a AttemptPostgreSQL) GetStats(ctx context.Context, quizID string) (*repositories.AttemptStats, error) {
	var stats repositories.AttemptStats

	row := a.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Select("COUNT(*) AS total_attempts, COALESCE(AVG(score), 0) AS average_score, COALESCE(MAX(score), 0) AS best_score, COALESCE(AVG(time_taken), 0) AS average_time_taken").
		Where("quiz_id = ?", quizID).
		Row()

	var avgTime float64
	if err := row.Scan(&stats.TotalAttempts, &stats.AverageScore, &stats.BestScore, &avgTime); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &stats, nil
		}
		return nil, err
	}
	stats.AverageTimeTaken = int(avgTime)

	return &stats, nil
}
