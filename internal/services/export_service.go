package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/learnhub/quiz-service/internal/models"
	"github.com/learnhub/quiz-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

var exportHeaders = []string{
	"Attempt ID", "User ID", "Score", "Time Taken (s)", "Completed", "Submitted At",
}

func (s *exportService) loadResults(ctx context.Context, quizID string) (*models.Quiz, []*models.QuizAttempt, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil, ErrQuizNotFound
		}
		return nil, nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	attempts, err := s.repo.Attempt().GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get attempts for quiz: %w", err)
	}

	return quiz, attempts, nil
}

// ExportQuizResultsToExcel renders all attempts for a quiz as an XLSX workbook.
func (s *exportService) ExportQuizResultsToExcel(ctx context.Context, quizID string) ([]byte, error) {
	quiz, attempts, err := s.loadResults(ctx, quizID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Results"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s (%s, %s)", quiz.Title, quiz.Topic, quiz.Difficulty))

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 3)
		f.SetCellValue(sheet, cell, header)
	}

	for row, attempt := range attempts {
		values := []interface{}{
			attempt.ID,
			attempt.UserID,
			attempt.Score,
			attempt.TimeTaken,
			attempt.Completed,
			attempt.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+4)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Exported quiz results to Excel",
		"quiz_id", quizID,
		"attempts_count", len(attempts))

	return buf.Bytes(), nil
}

// ExportQuizResultsToCSV renders all attempts for a quiz as CSV.
func (s *exportService) ExportQuizResultsToCSV(ctx context.Context, quizID string) ([]byte, error) {
	_, attempts, err := s.loadResults(ctx, quizID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, attempt := range attempts {
		record := []string{
			attempt.ID,
			attempt.UserID,
			strconv.FormatFloat(attempt.Score, 'f', 2, 64),
			strconv.Itoa(attempt.TimeTaken),
			strconv.FormatBool(attempt.Completed),
			attempt.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	s.logger.Info("Exported quiz results to CSV",
		"quiz_id", quizID,
		"attempts_count", len(attempts))

	return buf.Bytes(), nil
}
