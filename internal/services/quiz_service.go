package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/learnhub/quiz-service/internal/cache"
	"github.com/learnhub/quiz-service/internal/events"
	"github.com/learnhub/quiz-service/internal/generator"
	"github.com/learnhub/quiz-service/internal/models"
	"github.com/learnhub/quiz-service/internal/repositories"
	"github.com/learnhub/quiz-service/internal/validator"
)

// Quizzes are immutable after creation, so cached public views never need
// invalidation; the TTL only bounds memory.
const quizViewCacheTTL = 15 * time.Minute

type quizService struct {
	repo      repositories.Repository
	gen       generator.ContentGenerator
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuizService(
	repo repositories.Repository,
	gen generator.ContentGenerator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) QuizService {
	return &quizService{
		repo:      repo,
		gen:       gen,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// ===== GENERATION =====

func (s *quizService) Generate(ctx context.Context, req *GenerateQuizRequest) (*QuizSummary, error) {
	s.logger.Info("Generating quiz", "title", req.Title, "topic", req.Topic)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	questionCount := req.QuestionCount
	if questionCount == 0 {
		questionCount = models.DefaultQuestionCount
	}
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Quiz about %s", req.Topic)
	}

	generated, err := s.gen.GenerateQuestions(ctx, req.Topic, questionCount, string(difficulty))
	if err != nil {
		return nil, NewGenerationError("generate_questions", "upstream call failed", err)
	}

	// Never persist a quiz that cannot be scored: a short batch or a correct
	// answer outside the options fails the whole operation.
	if err := s.validator.Question().ValidateBatch(generated, questionCount); err != nil {
		return nil, NewGenerationError("generate_questions", err.Error(), nil)
	}

	quiz := &models.Quiz{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Topic:       req.Topic,
		Description: description,
		Difficulty:  difficulty,
		TimeLimit:   models.DefaultTimeLimit,
	}

	for i, g := range generated {
		question := models.QuizQuestion{
			ID:            uuid.NewString(),
			QuizID:        quiz.ID,
			Position:      i + 1,
			Text:          g.Question,
			CorrectAnswer: g.CorrectAnswer,
			Explanation:   g.Explanation,
			Difficulty:    difficulty,
		}
		if err := question.SetOptionValues(g.Options); err != nil {
			return nil, fmt.Errorf("failed to encode options: %w", err)
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("%w: failed to create quiz: %v", ErrPersistenceFailed, err)
	}

	s.publishEvent(ctx, events.NewQuizGeneratedEvent(events.QuizGeneratedEvent{
		QuizID:        quiz.ID,
		Title:         quiz.Title,
		Topic:         quiz.Topic,
		Difficulty:    string(quiz.Difficulty),
		QuestionCount: len(quiz.Questions),
	}))

	s.logger.Info("Quiz generated successfully",
		"quiz_id", quiz.ID,
		"question_count", len(quiz.Questions))

	return buildQuizSummary(quiz), nil
}

// ===== LISTING AND RETRIEVAL =====

func (s *quizService) List(ctx context.Context) ([]*QuizSummary, error) {
	quizzes, err := s.repo.Quiz().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	summaries := make([]*QuizSummary, len(quizzes))
	for i, quiz := range quizzes {
		summaries[i] = buildQuizSummary(quiz)
	}
	return summaries, nil
}

func (s *quizService) GetForTaking(ctx context.Context, id string) (*QuizForTaking, error) {
	cacheKey := quizViewCacheKey(id)

	var cached QuizForTaking
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Quiz view cache lookup failed", "quiz_id", id, "error", err)
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	view, err := buildQuizForTaking(quiz)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, view, quizViewCacheTTL); err != nil {
		s.logger.Warn("Quiz view cache store failed", "quiz_id", id, "error", err)
	}

	return view, nil
}

func (s *quizService) GetStats(ctx context.Context, id string) (*repositories.AttemptStats, error) {
	// Existence check only; no point loading the quiz and its questions here.
	exists, err := s.repo.Quiz().ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check quiz: %w", err)
	}
	if !exists {
		return nil, ErrQuizNotFound
	}

	stats, err := s.repo.Attempt().GetStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt stats: %w", err)
	}
	return stats, nil
}

// ===== HELPERS =====

func (s *quizService) publishEvent(ctx context.Context, event *events.QuizEvent) {
	// Event delivery is bookkeeping; a publish failure never fails the
	// operation that produced it.
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish quiz event",
			"event_type", event.Type,
			"error", err)
	}
}

func quizViewCacheKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:public", quizID)
}

func buildQuizSummary(quiz *models.Quiz) *QuizSummary {
	return &QuizSummary{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Topic:         quiz.Topic,
		Description:   quiz.Description,
		Difficulty:    quiz.Difficulty,
		QuestionCount: len(quiz.Questions),
		TimeLimit:     quiz.TimeLimit,
	}
}

func buildQuizForTaking(quiz *models.Quiz) (*QuizForTaking, error) {
	view := &QuizForTaking{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Topic:       quiz.Topic,
		Description: quiz.Description,
		Difficulty:  quiz.Difficulty,
		TimeLimit:   quiz.TimeLimit,
		Questions:   make([]QuestionForTaking, len(quiz.Questions)),
	}

	for i, q := range quiz.Questions {
		options, err := q.OptionValues()
		if err != nil {
			return nil, fmt.Errorf("failed to decode options for question %s: %w", q.ID, err)
		}
		view.Questions[i] = QuestionForTaking{
			ID:       q.ID,
			Question: q.Text,
			Options:  options,
		}
	}

	return view, nil
}
