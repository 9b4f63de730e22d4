package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub/quiz-service/internal/services"
	"github.com/learnhub/quiz-service/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	quizService   services.QuizService
	exportService services.ExportService
}

func NewQuizHandler(
	quizService services.QuizService,
	exportService services.ExportService,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler:   NewBaseHandler(logger),
		quizService:   quizService,
		exportService: exportService,
	}
}

// GenerateQuiz creates a new quiz from generated content
// @Summary Generate quiz
// @Description Generates a quiz on a topic and persists it with its questions
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz body services.GenerateQuizRequest true "Quiz parameters"
// @Success 201 {object} services.QuizSummary
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	var req services.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Generating quiz", "topic", req.Topic)

	summary, err := h.quizService.Generate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// ListQuizzes lists all quizzes
// @Summary List quizzes
// @Description Lists all quizzes as summaries without question bodies
// @Tags quizzes
// @Produce json
// @Success 200 {array} services.QuizSummary
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	summaries, err := h.quizService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetQuiz retrieves a quiz for taking
// @Summary Get quiz
// @Description Retrieves a quiz with its questions but without correct answers
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} services.QuizForTaking
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == "" {
		return
	}

	quiz, err := h.quizService.GetForTaking(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// GetQuizStats retrieves aggregate attempt statistics for a quiz
// @Summary Get quiz statistics
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} repositories.AttemptStats
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id}/stats [get]
func (h *QuizHandler) GetQuizStats(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == "" {
		return
	}

	stats, err := h.quizService.GetStats(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportQuizResults downloads a quiz's attempt results as a file
// @Summary Export quiz results
// @Description Exports all attempts for a quiz as xlsx (default) or csv
// @Tags quizzes
// @Produce application/octet-stream
// @Param id path string true "Quiz ID"
// @Param format query string false "xlsx or csv"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id}/export [get]
func (h *QuizHandler) ExportQuizResults(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == "" {
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	h.LogRequest(c, "Exporting quiz results", "quiz_id", id, "format", format)

	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case "xlsx":
		data, err = h.exportService.ExportQuizResultsToExcel(c.Request.Context(), id)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		data, err = h.exportService.ExportQuizResultsToCSV(c.Request.Context(), id)
		contentType = "text/csv"
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported export format",
			Details: format,
		})
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz-%s-results.%s", id, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
