package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/learnhub/quiz-service/internal/errors"
	"github.com/learnhub/quiz-service/internal/repositories"
	"github.com/learnhub/quiz-service/internal/services"
	"github.com/learnhub/quiz-service/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ===== SERVICE MOCKS =====

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) Generate(ctx context.Context, req *services.GenerateQuizRequest) (*services.QuizSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.QuizSummary), args.Error(1)
}

func (m *MockQuizService) List(ctx context.Context) ([]*services.QuizSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*services.QuizSummary), args.Error(1)
}

func (m *MockQuizService) GetForTaking(ctx context.Context, id string) (*services.QuizForTaking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.QuizForTaking), args.Error(1)
}

func (m *MockQuizService) GetStats(ctx context.Context, id string) (*repositories.AttemptStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.AttemptStats), args.Error(1)
}

type MockAttemptService struct {
	mock.Mock
}

func (m *MockAttemptService) Submit(ctx context.Context, req *services.SubmitAttemptRequest, userID string) (*services.AttemptResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AttemptResult), args.Error(1)
}

func (m *MockAttemptService) GetByUser(ctx context.Context, userID string) ([]*services.AttemptSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*services.AttemptSummary), args.Error(1)
}

func (m *MockAttemptService) Explain(ctx context.Context, req *services.ExplainAnswerRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportQuizResultsToExcel(ctx context.Context, quizID string) ([]byte, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockExportService) ExportQuizResultsToCSV(ctx context.Context, quizID string) ([]byte, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// ===== HELPERS =====

func testRouter(quizSvc services.QuizService, attemptSvc services.AttemptService, exportSvc services.ExportService, userID string) *gin.Engine {
	logger := utils.NewDevelopmentLogger()
	router := gin.New()
	if userID != "" {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", userID)
			c.Next()
		})
	}

	quizHandler := NewQuizHandler(quizSvc, exportSvc, logger)
	attemptHandler := NewAttemptHandler(attemptSvc, logger)

	router.POST("/quizzes", quizHandler.GenerateQuiz)
	router.GET("/quizzes/:id", quizHandler.GetQuiz)
	router.GET("/quizzes/:id/export", quizHandler.ExportQuizResults)
	router.POST("/attempts", attemptHandler.SubmitAttempt)
	router.GET("/attempts", attemptHandler.ListMyAttempts)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ===== TESTS =====

func TestGenerateQuiz_Created(t *testing.T) {
	quizSvc := new(MockQuizService)
	quizSvc.On("Generate", mock.Anything, mock.AnythingOfType("*services.GenerateQuizRequest")).
		Return(&services.QuizSummary{ID: "quiz-1", Title: "Go Basics", QuestionCount: 5}, nil)
	router := testRouter(quizSvc, new(MockAttemptService), new(MockExportService), "user-1")

	w := doJSON(t, router, http.MethodPost, "/quizzes", gin.H{"title": "Go Basics", "topic": "Go"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var summary services.QuizSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "quiz-1", summary.ID)
}

func TestGenerateQuiz_MalformedBody(t *testing.T) {
	quizSvc := new(MockQuizService)
	router := testRouter(quizSvc, new(MockAttemptService), new(MockExportService), "user-1")

	req := httptest.NewRequest(http.MethodPost, "/quizzes", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	quizSvc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerateQuiz_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperrors.ValidationErrors{{Field: "title", Message: "title is required"}}, http.StatusBadRequest},
		{"generation", services.NewGenerationError("generate_questions", "upstream call failed", nil), http.StatusBadGateway},
		{"not found", services.ErrQuizNotFound, http.StatusNotFound},
		{"internal", services.ErrPersistenceFailed, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quizSvc := new(MockQuizService)
			quizSvc.On("Generate", mock.Anything, mock.Anything).Return(nil, tc.err)
			router := testRouter(quizSvc, new(MockAttemptService), new(MockExportService), "user-1")

			w := doJSON(t, router, http.MethodPost, "/quizzes", gin.H{"title": "x", "topic": "y"})
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestGetQuiz_NotFound(t *testing.T) {
	quizSvc := new(MockQuizService)
	quizSvc.On("GetForTaking", mock.Anything, "missing").Return(nil, services.ErrQuizNotFound)
	router := testRouter(quizSvc, new(MockAttemptService), new(MockExportService), "")

	w := doJSON(t, router, http.MethodGet, "/quizzes/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetQuiz_BlankIDRejected(t *testing.T) {
	quizSvc := new(MockQuizService)
	router := testRouter(quizSvc, new(MockAttemptService), new(MockExportService), "")

	w := doJSON(t, router, http.MethodGet, "/quizzes/%20", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	quizSvc.AssertNotCalled(t, "GetForTaking", mock.Anything, mock.Anything)
}

func TestSubmitAttempt_RequiresAuthentication(t *testing.T) {
	attemptSvc := new(MockAttemptService)
	router := testRouter(new(MockQuizService), attemptSvc, new(MockExportService), "")

	w := doJSON(t, router, http.MethodPost, "/attempts", gin.H{
		"quiz_id": "quiz-1",
		"answers": []gin.H{},
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	attemptSvc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAttempt_Created(t *testing.T) {
	attemptSvc := new(MockAttemptService)
	attemptSvc.On("Submit", mock.Anything, mock.AnythingOfType("*services.SubmitAttemptRequest"), "user-1").
		Return(&services.AttemptResult{AttemptID: "a1", Score: 60, CorrectCount: 3, TotalQuestions: 5}, nil)
	router := testRouter(new(MockQuizService), attemptSvc, new(MockExportService), "user-1")

	w := doJSON(t, router, http.MethodPost, "/attempts", gin.H{
		"quiz_id": "quiz-1",
		"answers": []gin.H{{"question_id": "q1", "user_answer": "go"}},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var result services.AttemptResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 60.0, result.Score)
}

func TestListMyAttempts(t *testing.T) {
	attemptSvc := new(MockAttemptService)
	attemptSvc.On("GetByUser", mock.Anything, "user-1").
		Return([]*services.AttemptSummary{{ID: "a1", Score: 80}}, nil)
	router := testRouter(new(MockQuizService), attemptSvc, new(MockExportService), "user-1")

	w := doJSON(t, router, http.MethodGet, "/attempts", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var summaries []*services.AttemptSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
}

func TestExportQuizResults_FormatHandling(t *testing.T) {
	exportSvc := new(MockExportService)
	exportSvc.On("ExportQuizResultsToCSV", mock.Anything, "quiz-1").Return([]byte("Attempt ID\n"), nil)
	router := testRouter(new(MockQuizService), new(MockAttemptService), exportSvc, "user-1")

	w := doJSON(t, router, http.MethodGet, "/quizzes/quiz-1/export?format=csv", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	w = doJSON(t, router, http.MethodGet, "/quizzes/quiz-1/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
