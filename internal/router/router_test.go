package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"trivia-api/internal/config"
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/handler"
	"trivia-api/internal/logger"
	"trivia-api/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) ListQuestions(ctx context.Context, page int) (*dto.QuestionsPageResponse, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionsPageResponse), args.Error(1)
}

func (m *MockQuestionService) ListQuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error) {
	args := m.Called(ctx, categoryID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryQuestionsResponse), args.Error(1)
}

func (m *MockQuestionService) SearchQuestions(ctx context.Context, term string) (*dto.SearchQuestionsResponse, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SearchQuestionsResponse), args.Error(1)
}

func (m *MockQuestionService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest, page int) (*dto.CreateQuestionResponse, error) {
	args := m.Called(ctx, req, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateQuestionResponse), args.Error(1)
}

func (m *MockQuestionService) DeleteQuestion(ctx context.Context, id int64, page int) (*dto.DeleteQuestionResponse, error) {
	args := m.Called(ctx, id, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeleteQuestionResponse), args.Error(1)
}

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) NextQuestion(ctx context.Context, round domain.QuizRound) (*dto.QuizResponse, error) {
	args := m.Called(ctx, round)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

type testServer struct {
	app        *fiber.App
	categories *MockCategoryService
	questions  *MockQuestionService
	quiz       *MockQuizService
}

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

func newTestServer(t *testing.T, checks map[string]handler.PingFunc) *testServer {
	t.Helper()
	s := &testServer{
		categories: new(MockCategoryService),
		questions:  new(MockQuestionService),
		quiz:       new(MockQuizService),
	}
	v := validation.NewValidator()

	cfg := DefaultConfig()
	cfg.MetricsEnabled = true
	s.app = New(cfg, Handlers{
		Category:  handler.NewCategoryHandler(s.categories, s.questions),
		Question:  handler.NewQuestionHandler(s.questions, v),
		Quiz:      handler.NewQuizHandler(s.quiz, v),
		Health:    handler.NewHealthHandler(checks),
		Validator: v,
	})
	return s
}

func (s *testServer) do(t *testing.T, method, target, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out), string(body))
}

func assertErrorEnvelope(t *testing.T, resp *http.Response, status int, message string) {
	t.Helper()
	assert.Equal(t, status, resp.StatusCode)
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.False(t, body.Success)
	assert.Equal(t, status, body.Error)
	assert.Equal(t, message, body.Message)
}

func assertCORS(t *testing.T, resp *http.Response) {
	t.Helper()
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "Content-Type, Authorization", resp.Header.Get(fiber.HeaderAccessControlAllowHeaders))
	assert.Equal(t, "GET,PUT,POST,DELETE,PATCH,OPTIONS", resp.Header.Get(fiber.HeaderAccessControlAllowMethods))
}

func TestGetCategories(t *testing.T) {
	s := newTestServer(t, nil)
	s.categories.On("ListCategories", mock.Anything).Return([]*domain.Category{
		{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"},
	}, nil).Once()

	resp := s.do(t, http.MethodGet, "/categories", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assertCORS(t, resp)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	var body dto.CategoriesResponse
	decode(t, resp, &body)
	assert.True(t, body.Success)
	assert.Equal(t, []string{"Science", "Art"}, body.Categories)
}

func TestGetCategories_LoadFailure(t *testing.T) {
	s := newTestServer(t, nil)
	s.categories.On("ListCategories", mock.Anything).Return(nil, errors.New("db down")).Once()

	resp := s.do(t, http.MethodGet, "/categories", "")

	assertErrorEnvelope(t, resp, http.StatusNotFound, "Resource Not Found")
	assertCORS(t, resp)
}

func TestGetQuestions(t *testing.T) {
	s := newTestServer(t, nil)
	page := &dto.QuestionsPageResponse{
		Success:         true,
		Questions:       []dto.QuestionDTO{{ID: 11, Question: "Q", Answer: "A", Category: 1, Difficulty: 2}},
		TotalQuestions:  11,
		CurrentCategory: []string{"Science"},
		Categories:      []string{"Science"},
	}
	s.questions.On("ListQuestions", mock.Anything, 2).Return(page, nil).Once()

	resp := s.do(t, http.MethodGet, "/questions?page=2", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.QuestionsPageResponse
	decode(t, resp, &body)
	assert.Equal(t, 11, body.TotalQuestions)
	assert.Equal(t, int64(11), body.Questions[0].ID)
}

func TestGetQuestions_DefaultsToFirstPage(t *testing.T) {
	s := newTestServer(t, nil)
	s.questions.On("ListQuestions", mock.Anything, 1).Return(&dto.QuestionsPageResponse{Success: true}, nil).Once()

	resp := s.do(t, http.MethodGet, "/questions", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	s.questions.AssertExpectations(t)
}

func TestGetQuestions_Errors(t *testing.T) {
	t.Run("page beyond range", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.questions.On("ListQuestions", mock.Anything, 1000).
			Return(nil, domain.NewNotFoundError("no questions on the requested page")).Once()

		resp := s.do(t, http.MethodGet, "/questions?page=1000", "")

		assertErrorEnvelope(t, resp, http.StatusNotFound, "Resource Not Found")
		assertCORS(t, resp)
	})

	t.Run("non-integer page", func(t *testing.T) {
		s := newTestServer(t, nil)

		resp := s.do(t, http.MethodGet, "/questions?page=abc", "")

		assertErrorEnvelope(t, resp, http.StatusUnprocessableEntity, "Unprocessable")
		s.questions.AssertNotCalled(t, "ListQuestions", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		s := newTestServer(t, nil)
		s.questions.On("ListQuestions", mock.Anything, 1).
			Return(nil, domain.NewInternalError("Failed to list questions", errors.New("timeout"))).Once()

		resp := s.do(t, http.MethodGet, "/questions", "")

		assertErrorEnvelope(t, resp, http.StatusInternalServerError, "Internal Server Error")
	})
}

func TestDeleteQuestion(t *testing.T) {
	s := newTestServer(t, nil)
	s.questions.On("DeleteQuestion", mock.Anything, int64(5), 1).Return(&dto.DeleteQuestionResponse{
		Success:   true,
		Deleted:   5,
		Questions: []dto.QuestionDTO{{ID: 1}, {ID: 2}},
	}, nil).Once()

	resp := s.do(t, http.MethodDelete, "/questions/5", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.DeleteQuestionResponse
	decode(t, resp, &body)
	assert.True(t, body.Success)
	assert.Equal(t, int64(5), body.Deleted)
	for _, q := range body.Questions {
		assert.NotEqual(t, int64(5), q.ID)
	}
}

func TestDeleteQuestion_Missing(t *testing.T) {
	s := newTestServer(t, nil)
	s.questions.On("DeleteQuestion", mock.Anything, int64(1000), 1).
		Return(nil, domain.NewUnprocessableError("Question could not be deleted", domain.NewQuestionNotFoundError(1000))).Once()

	resp := s.do(t, http.MethodDelete, "/questions/1000", "")

	assertErrorEnvelope(t, resp, http.StatusUnprocessableEntity, "Unprocessable")
	assertCORS(t, resp)
}

func TestDeleteQuestion_IDBeyondInt32(t *testing.T) {
	s := newTestServer(t, nil)
	s.questions.On("DeleteQuestion", mock.Anything, int64(9999999999), 1).
		Return(nil, domain.NewUnprocessableError("Question could not be deleted", domain.NewQuestionNotFoundError(9999999999))).Once()

	resp := s.do(t, http.MethodDelete, "/questions/9999999999", "")

	assertErrorEnvelope(t, resp, http.StatusUnprocessableEntity, "Unprocessable")
}

func TestCreateQuestion(t *testing.T) {
	s := newTestServer(t, nil)
	s.questions.On("CreateQuestion", mock.Anything, mock.MatchedBy(func(req *dto.CreateQuestionRequest) bool {
		return req.Question == "Test questions" && *req.Category == 3 && *req.Difficulty == 1
	}), 1).Return(&dto.CreateQuestionResponse{
		Success:        true,
		Created:        24,
		Questions:      []dto.QuestionDTO{{ID: 1}},
		TotalQuestions: 24,
	}, nil).Once()

	resp := s.do(t, http.MethodPost, "/questions",
		`{"question":"Test questions","answer":"Answer to test questions","category":3,"difficulty":1}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.CreateQuestionResponse
	decode(t, resp, &body)
	assert.True(t, body.Success)
	assert.Equal(t, int64(24), body.Created)
	assert.Equal(t, 24, body.TotalQuestions)
}

func TestCreateQuestion_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"question":`},
		{name: "missing answer", body: `{"question":"Q","category":1,"difficulty":1}`},
		{name: "empty question", body: `{"question":"","answer":"A","category":1,"difficulty":1}`},
		{name: "missing category", body: `{"question":"Q","answer":"A","difficulty":1}`},
		{name: "empty object", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)

			resp := s.do(t, http.MethodPost, "/questions", tt.body)

			assertErrorEnvelope(t, resp, http.StatusUnprocessableEntity, "Unprocessable")
			s.questions.AssertNotCalled(t, "CreateQuestion", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSearchQuestions(t *testing.T) {
	s := newTestServer(t, nil)
	s.questions.On("SearchQuestions", mock.Anything, "title").Return(&dto.SearchQuestionsResponse{
		Success:         true,
		TotalQuestions:  1,
		Questions:       []dto.QuestionDTO{{ID: 5, Question: "What is the title?"}},
		CurrentCategory: []string{"Science"},
	}, nil).Once()

	resp := s.do(t, http.MethodPost, "/questions/search", `{"searchTerm":"title"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.SearchQuestionsResponse
	decode(t, resp, &body)
	assert.Equal(t, 1, body.TotalQuestions)
	assert.Equal(t, int64(5), body.Questions[0].ID)
}

func TestSearchQuestions_MissingTerm(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, http.MethodPost, "/questions/search", `{"term":"title"}`)

	assertErrorEnvelope(t, resp, http.StatusUnprocessableEntity, "Unprocessable")
	s.questions.AssertNotCalled(t, "SearchQuestions", mock.Anything, mock.Anything)
}

func TestGetCategoryQuestions(t *testing.T) {
	s := newTestServer(t, nil)
	s.questions.On("ListQuestionsByCategory", mock.Anything, int64(3), 1).Return(&dto.CategoryQuestionsResponse{
		Success:         true,
		Questions:       []dto.QuestionDTO{{ID: 2, Category: 3}},
		TotalQuestions:  1,
		CurrentCategory: 3,
	}, nil).Once()

	resp := s.do(t, http.MethodGet, "/categories/3/questions", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.CategoryQuestionsResponse
	decode(t, resp, &body)
	assert.Equal(t, int64(3), body.CurrentCategory)
	assert.Equal(t, int64(3), body.Questions[0].Category)
}

func TestGetCategoryQuestions_Empty(t *testing.T) {
	s := newTestServer(t, nil)
	s.questions.On("ListQuestionsByCategory", mock.Anything, int64(42), 1).
		Return(nil, domain.NewNotFoundError("no questions found for category")).Once()

	resp := s.do(t, http.MethodGet, "/categories/42/questions", "")

	assertErrorEnvelope(t, resp, http.StatusNotFound, "Resource Not Found")
}

func TestPlayQuiz(t *testing.T) {
	s := newTestServer(t, nil)
	next := &dto.QuestionDTO{ID: 12, Question: "Q", Answer: "A", Category: 1, Difficulty: 3}
	s.quiz.On("NextQuestion", mock.Anything, domain.QuizRound{CategoryID: 1, PreviousQuestions: []int64{10, 11}}).
		Return(&dto.QuizResponse{Success: true, Question: next}, nil).Once()

	resp := s.do(t, http.MethodPost, "/quizzes",
		`{"previous_questions":[10,11],"quiz_category":{"id":1,"type":"Science"}}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.QuizResponse
	decode(t, resp, &body)
	require.NotNil(t, body.Question)
	assert.Equal(t, int64(12), body.Question.ID)
}

func TestPlayQuiz_Exhausted(t *testing.T) {
	s := newTestServer(t, nil)
	s.quiz.On("NextQuestion", mock.Anything, mock.Anything).Return(&dto.QuizResponse{Success: true}, nil).Once()

	resp := s.do(t, http.MethodPost, "/quizzes", `{"previous_questions":[1,2,3],"quiz_category":{"id":0,"type":"click"}}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"question":null}`, string(raw))
}

func TestPlayQuiz_MissingCategory(t *testing.T) {
	for _, body := range []string{`{"previous_questions":[]}`, `{"previous_questions":[],"quiz_category":null}`} {
		s := newTestServer(t, nil)

		resp := s.do(t, http.MethodPost, "/quizzes", body)

		assertErrorEnvelope(t, resp, http.StatusUnprocessableEntity, "Unprocessable")
		s.quiz.AssertNotCalled(t, "NextQuestion", mock.Anything, mock.Anything)
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, http.MethodGet, "/does-not-exist", "")

	assertErrorEnvelope(t, resp, http.StatusNotFound, "Resource Not Found")
	assertCORS(t, resp)
}

func TestPreflight(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPost)

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assertCORS(t, resp)
}

func TestHealth(t *testing.T) {
	t.Run("all up", func(t *testing.T) {
		s := newTestServer(t, map[string]handler.PingFunc{
			"database": func(context.Context) error { return nil },
		})

		resp := s.do(t, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body dto.HealthResponse
		decode(t, resp, &body)
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "up", body.Services["database"])
	})

	t.Run("cache down", func(t *testing.T) {
		s := newTestServer(t, map[string]handler.PingFunc{
			"database": func(context.Context) error { return nil },
			"cache":    func(context.Context) error { return errors.New("refused") },
		})

		resp := s.do(t, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		var body dto.HealthResponse
		decode(t, resp, &body)
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "down", body.Services["cache"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	s.categories.On("ListCategories", mock.Anything).Return([]*domain.Category{{ID: 1, Type: "Art"}}, nil).Once()
	s.do(t, http.MethodGet, "/categories", "")

	resp := s.do(t, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(raw, []byte("trivia_http_requests_total")))
}
