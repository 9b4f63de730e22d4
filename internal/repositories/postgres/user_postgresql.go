package postgres

import (
	"context"

	"github.com/learnhub/quiz-service/internal/models"
	"github.com/learnhub/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u UserPostgreSQL) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (u UserPostgreSQL) IncrementQuizCompletion(ctx context.Context, userID string, step, cap int) error {
	// Single conditional update; read-modify-write here would lose increments
	// under concurrent submissions by the same user.
	result := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("quiz_completion", gorm.Expr("LEAST(quiz_completion + ?, ?)", step, cap))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
