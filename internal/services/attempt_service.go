package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/learnhub/quiz-service/internal/events"
	"github.com/learnhub/quiz-service/internal/generator"
	"github.com/learnhub/quiz-service/internal/models"
	"github.com/learnhub/quiz-service/internal/repositories"
	"github.com/learnhub/quiz-service/internal/validator"
)

type attemptService struct {
	repo      repositories.Repository
	gen       generator.ContentGenerator
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAttemptService(
	repo repositories.Repository,
	gen generator.ContentGenerator,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) AttemptService {
	return &attemptService{
		repo:      repo,
		gen:       gen,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// ===== SUBMISSION AND SCORING =====

func (s *attemptService) Submit(ctx context.Context, req *SubmitAttemptRequest, userID string) (*AttemptResult, error) {
	s.logger.Info("Submitting quiz attempt",
		"quiz_id", req.QuizID,
		"user_id", userID,
		"answers_count", len(req.Answers))

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, req.QuizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	questionsByID := make(map[string]*models.QuizQuestion, len(quiz.Questions))
	for i := range quiz.Questions {
		questionsByID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	// An answer for an unknown question is dropped: not counted, not stored,
	// not an error. Partial submissions are allowed.
	processed := make([]models.AttemptAnswer, 0, len(req.Answers))
	correctCount := 0
	for _, submission := range req.Answers {
		question, ok := questionsByID[submission.QuestionID]
		if !ok {
			s.logger.Debug("Dropping answer for unknown question",
				"quiz_id", req.QuizID,
				"question_id", submission.QuestionID)
			continue
		}

		// Exact, case-sensitive string equality; no normalization.
		isCorrect := question.CorrectAnswer == submission.UserAnswer
		if isCorrect {
			correctCount++
		}
		processed = append(processed, models.AttemptAnswer{
			QuestionID: submission.QuestionID,
			UserAnswer: submission.UserAnswer,
			IsCorrect:  isCorrect,
		})
	}

	// Score against the full quiz, not the submitted subset: 1 correct out of
	// 1 submitted on a 10-question quiz is 10%, not 100%.
	totalQuestions := len(quiz.Questions)
	score := 0.0
	if totalQuestions > 0 {
		score = float64(correctCount) / float64(totalQuestions) * 100
	}

	attempt := &models.QuizAttempt{
		ID:        uuid.NewString(),
		UserID:    userID,
		QuizID:    quiz.ID,
		Score:     score,
		TimeTaken: req.TimeTaken,
		Completed: true,
	}
	if err := attempt.SetAnswerValues(processed); err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("%w: failed to create attempt: %v", ErrPersistenceFailed, err)
	}

	// The attempt is authoritative from here on. Progress is gamification
	// bookkeeping: a failed increment is logged and swallowed.
	if err := s.repo.User().IncrementQuizCompletion(ctx, userID, models.ProgressStep, models.ProgressCap); err != nil {
		s.logger.Error("Failed to increment quiz completion progress",
			"user_id", userID,
			"attempt_id", attempt.ID,
			"error", err)
	}

	s.publishEvent(ctx, events.NewAttemptSubmittedEvent(events.AttemptSubmittedEvent{
		AttemptID:      attempt.ID,
		QuizID:         quiz.ID,
		UserID:         userID,
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: totalQuestions,
		TimeTaken:      req.TimeTaken,
	}))

	s.logger.Info("Quiz attempt submitted successfully",
		"attempt_id", attempt.ID,
		"score", score,
		"correct_count", correctCount)

	return buildAttemptResult(attempt, quiz, processed, correctCount), nil
}

// ===== HISTORY =====

func (s *attemptService) GetByUser(ctx context.Context, userID string) ([]*AttemptSummary, error) {
	attempts, err := s.repo.Attempt().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts by user: %w", err)
	}

	summaries := make([]*AttemptSummary, len(attempts))
	for i, attempt := range attempts {
		summary := &AttemptSummary{
			ID:        attempt.ID,
			Score:     attempt.Score,
			TimeTaken: attempt.TimeTaken,
			Completed: attempt.Completed,
			CreatedAt: attempt.CreatedAt,
		}
		if attempt.Quiz != nil {
			summary.Quiz = &AttemptQuizInfo{
				ID:         attempt.Quiz.ID,
				Title:      attempt.Quiz.Title,
				Topic:      attempt.Quiz.Topic,
				Difficulty: attempt.Quiz.Difficulty,
			}
		}
		summaries[i] = summary
	}

	return summaries, nil
}

// ===== EXPLANATION ON DEMAND =====

func (s *attemptService) Explain(ctx context.Context, req *ExplainAnswerRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", err
	}

	explanation, err := s.gen.Explain(ctx, req.Question, req.CorrectAnswer, req.UserAnswer)
	if err != nil {
		return "", NewGenerationError("explain_answer", "upstream call failed", err)
	}

	return explanation, nil
}

// ===== HELPERS =====

func (s *attemptService) publishEvent(ctx context.Context, event *events.QuizEvent) {
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish quiz event",
			"event_type", event.Type,
			"error", err)
	}
}

func buildAttemptResult(attempt *models.QuizAttempt, quiz *models.Quiz, processed []models.AttemptAnswer, correctCount int) *AttemptResult {
	questionsByID := make(map[string]*models.QuizQuestion, len(quiz.Questions))
	for i := range quiz.Questions {
		questionsByID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	reviews := make([]AnswerReview, 0, len(processed))
	for _, answer := range processed {
		question := questionsByID[answer.QuestionID]
		reviews = append(reviews, AnswerReview{
			QuestionID:    answer.QuestionID,
			Question:      question.Text,
			UserAnswer:    answer.UserAnswer,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     answer.IsCorrect,
			Explanation:   question.Explanation,
		})
	}

	return &AttemptResult{
		AttemptID:      attempt.ID,
		Score:          attempt.Score,
		CorrectCount:   correctCount,
		TotalQuestions: len(quiz.Questions),
		Answers:        reviews,
	}
}
