package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/learnhub/quiz-service/internal/cache"
	"github.com/learnhub/quiz-service/internal/generator"
	"github.com/learnhub/quiz-service/internal/models"
	"github.com/learnhub/quiz-service/internal/repositories"
)

// ===== REPOSITORY MOCKS =====

type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuizRepository) List(ctx context.Context) ([]*models.Quiz, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quiz), args.Error(1)
}

type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, id string) (*models.QuizAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetByUser(ctx context.Context, userID string) ([]*models.QuizAttempt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetByQuiz(ctx context.Context, quizID string) ([]*models.QuizAttempt, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetStats(ctx context.Context, quizID string) (*repositories.AttemptStats, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.AttemptStats), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) IncrementQuizCompletion(ctx context.Context, userID string, step, cap int) error {
	args := m.Called(ctx, userID, step, cap)
	return args.Error(0)
}

// saturatingUserRepo is an in-memory UserRepository that applies the same
// clamped increment the SQL store does. It exists to pin the saturation
// contract: progress advances by step and never passes cap.
type saturatingUserRepo struct {
	mu       sync.Mutex
	progress map[string]int
}

func newSaturatingUserRepo(initial map[string]int) *saturatingUserRepo {
	if initial == nil {
		initial = make(map[string]int)
	}
	return &saturatingUserRepo{progress: initial}
}

func (r *saturatingUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.progress[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.User{ID: id, QuizCompletion: value}, nil
}

func (r *saturatingUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.progress[id]
	return ok, nil
}

func (r *saturatingUserRepo) IncrementQuizCompletion(ctx context.Context, userID string, step, cap int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.progress[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	next := r.progress[userID] + step
	if next > cap {
		next = cap
	}
	r.progress[userID] = next
	return nil
}

// mockRepository aggregates the mocks behind the Repository interface.
type mockRepository struct {
	quiz    *MockQuizRepository
	attempt *MockAttemptRepository
	user    *MockUserRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		quiz:    new(MockQuizRepository),
		attempt: new(MockAttemptRepository),
		user:    new(MockUserRepository),
	}
}

func (r *mockRepository) Quiz() repositories.QuizRepository       { return r.quiz }
func (r *mockRepository) Attempt() repositories.AttemptRepository { return r.attempt }
func (r *mockRepository) User() repositories.UserRepository       { return r.user }

// repoWithUsers swaps the user repository behind a mock aggregate.
type repoWithUsers struct {
	*mockRepository
	users repositories.UserRepository
}

func (r *repoWithUsers) User() repositories.UserRepository { return r.users }

// ===== GENERATOR STUB =====

// stubGenerator lets each test script the generator with plain functions.
type stubGenerator struct {
	generateFn func(ctx context.Context, topic string, count int, difficulty string) ([]generator.GeneratedQuestion, error)
	explainFn  func(ctx context.Context, question, correctAnswer, userAnswer string) (string, error)
}

func (g *stubGenerator) GenerateQuestions(ctx context.Context, topic string, count int, difficulty string) ([]generator.GeneratedQuestion, error) {
	return g.generateFn(ctx, topic, count, difficulty)
}

func (g *stubGenerator) Explain(ctx context.Context, question, correctAnswer, userAnswer string) (string, error) {
	if g.explainFn == nil {
		return "", nil
	}
	return g.explainFn(ctx, question, correctAnswer, userAnswer)
}

// ===== CACHE FAKE =====

// memoryCache is an in-process CacheService for tests; TTLs are ignored.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	raw, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
