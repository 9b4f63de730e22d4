package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub/quiz-service/internal/services"
	"github.com/learnhub/quiz-service/internal/utils"
)

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
}

func NewAttemptHandler(
	attemptService services.AttemptService,
	logger utils.Logger,
) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
	}
}

// SubmitAttempt scores and records a quiz attempt
// @Summary Submit attempt
// @Description Scores the submitted answers, records the attempt and returns the result with correct answers revealed
// @Tags attempts
// @Accept json
// @Produce json
// @Param attempt body services.SubmitAttemptRequest true "Submitted answers"
// @Success 201 {object} services.AttemptResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attempts [post]
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	var req services.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Submitting attempt", "quiz_id", req.QuizID)

	result, err := h.attemptService.Submit(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListMyAttempts lists the caller's attempt history
// @Summary List attempts
// @Description Lists the caller's attempts most recent first
// @Tags attempts
// @Produce json
// @Success 200 {array} services.AttemptSummary
// @Failure 401 {object} ErrorResponse
// @Router /attempts [get]
func (h *AttemptHandler) ListMyAttempts(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	summaries, err := h.attemptService.GetByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// ExplainAnswer generates an explanation for an answered question
// @Summary Explain answer
// @Description Generates an on-demand explanation contrasting the correct answer with the user's answer
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body services.ExplainAnswerRequest true "Question and answers"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /explanations [post]
func (h *AttemptHandler) ExplainAnswer(c *gin.Context) {
	var req services.ExplainAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	explanation, err := h.attemptService.Explain(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Explanation generated",
		Data:    gin.H{"explanation": explanation},
	})
}
