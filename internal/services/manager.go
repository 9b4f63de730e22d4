package services

import (
	"log/slog"

	"github.com/learnhub/quiz-service/internal/cache"
	"github.com/learnhub/quiz-service/internal/events"
	"github.com/learnhub/quiz-service/internal/generator"
	"github.com/learnhub/quiz-service/internal/repositories"
	"github.com/learnhub/quiz-service/internal/validator"
)

type serviceManager struct {
	quiz    QuizService
	attempt AttemptService
	export  ExportService
}

// NewServiceManager wires all services against a shared repository,
// generator, cache and event publisher.
func NewServiceManager(
	repo repositories.Repository,
	gen generator.ContentGenerator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) ServiceManager {
	return &serviceManager{
		quiz:    NewQuizService(repo, gen, cacheService, publisher, logger, v),
		attempt: NewAttemptService(repo, gen, publisher, logger, v),
		export:  NewExportService(repo, logger),
	}
}

func (m *serviceManager) Quiz() QuizService       { return m.quiz }
func (m *serviceManager) Attempt() AttemptService { return m.attempt }
func (m *serviceManager) Export() ExportService   { return m.export }
