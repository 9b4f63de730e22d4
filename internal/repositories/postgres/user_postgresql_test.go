package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/learnhub/quiz-service/internal/models"
	"github.com/learnhub/quiz-service/internal/repositories"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

// The progress counter must be advanced and clamped in one statement; a
// read-modify-write here would lose increments under concurrent submissions.
func TestIncrementQuizCompletion_ConditionalUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgreSQL(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "quiz_completion"=LEAST(quiz_completion + $1, $2)`)).
		WithArgs(models.ProgressStep, models.ProgressCap, sqlmock.AnyArg(), "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementQuizCompletion(context.Background(), "user-1", models.ProgressStep, models.ProgressCap)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementQuizCompletion_UnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgreSQL(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "quiz_completion"=LEAST(quiz_completion + $1, $2)`)).
		WithArgs(models.ProgressStep, models.ProgressCap, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementQuizCompletion(context.Background(), "missing", models.ProgressStep, models.ProgressCap)

	require.Error(t, err)
	assert.True(t, repositories.IsNotFoundError(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
