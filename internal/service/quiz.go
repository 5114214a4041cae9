package service

import (
	"context"
	"math/rand"
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

// IndexPicker returns an index in [0, n). Implementations must be safe for
// concurrent use.
type IndexPicker func(n int) int

// QuizService defines the interface for quiz play
type QuizService interface {
	// NextQuestion draws one question of the round's category that was not
	// asked before. A nil Question in the response means the pool is exhausted.
	NextQuestion(ctx context.Context, round domain.QuizRound) (*dto.QuizResponse, error)
}

// QuizServiceOption configures a quizService
type QuizServiceOption func(*quizService)

// WithIndexPicker replaces the uniform random source, mainly for tests.
func WithIndexPicker(pick IndexPicker) QuizServiceOption {
	return func(s *quizService) {
		s.pick = pick
	}
}

type quizService struct {
	repo domain.QuestionRepository
	pick IndexPicker
}

// NewQuizService creates a new instance of quizService
func NewQuizService(repo domain.QuestionRepository, opts ...QuizServiceOption) QuizService {
	s := &quizService{
		repo: repo,
		pick: rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextQuestion implements QuizService
func (s *quizService) NextQuestion(ctx context.Context, round domain.QuizRound) (*dto.QuizResponse, error) {
	ids, err := s.repo.ListQuestionIDs(ctx, round.CategoryID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quiz questions", err)
	}

	eligible := round.EligibleIDs(ids)
	for len(eligible) > 0 {
		i := s.pick(len(eligible))
		question, err := s.repo.GetQuestion(ctx, eligible[i])
		if err != nil {
			return nil, domain.NewInternalError("Failed to get quiz question", err)
		}
		if question != nil {
			next := dto.NewQuestionDTO(question)
			return &dto.QuizResponse{Success: true, Question: &next}, nil
		}

		// deleted between the id listing and the lookup
		eligible = append(eligible[:i], eligible[i+1:]...)
	}

	logger.Get().Debug("Quiz pool exhausted",
		zap.Int64("category", round.CategoryID),
		zap.Int("previous_questions", len(round.PreviousQuestions)),
	)
	return &dto.QuizResponse{Success: true, Question: nil}, nil
}
