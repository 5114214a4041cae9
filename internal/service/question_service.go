package service

import (
	"context"
	"errors"
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// QuestionService defines the question listing, search and mutation operations
type QuestionService interface {
	ListQuestions(ctx context.Context, page int) (*dto.QuestionsPageResponse, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error)
	SearchQuestions(ctx context.Context, term string) (*dto.SearchQuestionsResponse, error)
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest, page int) (*dto.CreateQuestionResponse, error)
	DeleteQuestion(ctx context.Context, id int64, page int) (*dto.DeleteQuestionResponse, error)
}

type questionService struct {
	repo       domain.QuestionRepository
	categories CategoryService
}

// NewQuestionService creates a new instance of questionService
func NewQuestionService(repo domain.QuestionRepository, categories CategoryService) QuestionService {
	return &questionService{
		repo:       repo,
		categories: categories,
	}
}

// ListQuestions returns one page of all questions along with the category
// labels. An empty page or an empty category set is NOT_FOUND. When both loads
// fail the question store error is reported.
func (s *questionService) ListQuestions(ctx context.Context, page int) (*dto.QuestionsPageResponse, error) {
	var (
		questions            []*domain.Question
		categories           []string
		questionsErr, catErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		questions, questionsErr = s.repo.ListQuestions(ctx)
		return questionsErr
	})
	g.Go(func() error {
		categories, catErr = s.categoryTypes(ctx)
		return catErr
	})
	_ = g.Wait()

	if questionsErr != nil {
		return nil, domain.NewInternalError("Failed to list questions", questionsErr)
	}
	if catErr != nil {
		return nil, catErr
	}

	current := domain.Paginate(questions, page)
	if len(current) == 0 {
		return nil, domain.NewNotFoundError("no questions on the requested page")
	}
	if len(categories) == 0 {
		return nil, domain.NewNotFoundError("no categories available")
	}

	return &dto.QuestionsPageResponse{
		Success:         true,
		Questions:       dto.NewQuestionDTOs(current),
		TotalQuestions:  len(questions),
		CurrentCategory: categories,
		Categories:      categories,
	}, nil
}

// ListQuestionsByCategory returns one page of the questions whose category
// equals categoryID. An empty page is NOT_FOUND.
func (s *questionService) ListQuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error) {
	questions, err := s.repo.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list questions by category", err)
	}

	current := domain.Paginate(questions, page)
	if len(current) == 0 {
		return nil, domain.NewNotFoundError("no questions found for category")
	}

	return &dto.CategoryQuestionsResponse{
		Success:         true,
		Questions:       dto.NewQuestionDTOs(current),
		TotalQuestions:  len(questions),
		CurrentCategory: categoryID,
	}, nil
}

// SearchQuestions returns every question containing term, case-insensitive.
// No match is a valid empty result.
func (s *questionService) SearchQuestions(ctx context.Context, term string) (*dto.SearchQuestionsResponse, error) {
	questions, err := s.repo.SearchQuestions(ctx, term)
	if err != nil {
		return nil, domain.NewInternalError("Failed to search questions", err)
	}

	categories, err := s.categoryTypes(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.SearchQuestionsResponse{
		Success:         true,
		TotalQuestions:  len(questions),
		Questions:       dto.NewQuestionDTOs(questions),
		CurrentCategory: categories,
	}, nil
}

// CreateQuestion stores a new question and returns the requested page of all
// questions with the new total.
func (s *questionService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest, page int) (*dto.CreateQuestionResponse, error) {
	var missing domain.ValidationErrors
	if req.Category == nil {
		missing = append(missing, domain.NewMissingFieldError("category"))
	}
	if req.Difficulty == nil {
		missing = append(missing, domain.NewMissingFieldError("difficulty"))
	}
	if len(missing) > 0 {
		return nil, missing
	}

	question := domain.NewQuestion(req.Question, req.Answer, *req.Category, *req.Difficulty)
	if err := question.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateQuestion(ctx, question); err != nil {
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, validationErrs
		}
		return nil, domain.NewUnprocessableError("Failed to create question", err)
	}
	logger.Get().Info("Question created", zap.Int64("question_id", question.ID), zap.Int64("category", question.Category))

	questions, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list questions", err)
	}

	return &dto.CreateQuestionResponse{
		Success:        true,
		Created:        question.ID,
		Questions:      dto.NewQuestionDTOs(domain.Paginate(questions, page)),
		TotalQuestions: len(questions),
	}, nil
}

// DeleteQuestion removes a question. Deleting an id that does not exist is
// UNPROCESSABLE rather than NOT_FOUND.
func (s *questionService) DeleteQuestion(ctx context.Context, id int64, page int) (*dto.DeleteQuestionResponse, error) {
	if err := s.repo.DeleteQuestion(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnprocessableError("Question could not be deleted", err)
		}
		return nil, domain.NewInternalError("Failed to delete question", err)
	}
	logger.Get().Info("Question deleted", zap.Int64("question_id", id))

	questions, err := s.repo.ListQuestions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list questions", err)
	}

	return &dto.DeleteQuestionResponse{
		Success:   true,
		Deleted:   id,
		Questions: dto.NewQuestionDTOs(domain.Paginate(questions, page)),
	}, nil
}

// categoryTypes loads the category labels; failing to load them is reported
// as NOT_FOUND.
func (s *questionService) categoryTypes(ctx context.Context) ([]string, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, domain.NewError(domain.ErrNotFound, "Failed to load categories", err)
	}
	return dto.CategoryTypes(categories), nil
}
