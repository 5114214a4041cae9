package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id, question, answer, category, difficulty`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// ListQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY id`
	questions, err := a.selectQuestions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// GetQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	var modelQuestion models.Question
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	err := GetExecutor(ctx, a.db).GetContext(ctx, &modelQuestion, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %d: %w", id, err)
	}
	return toDomainQuestion(&modelQuestion), nil
}

// ListQuestionsByCategory implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE category = $1 ORDER BY id`
	questions, err := a.selectQuestions(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions for category %d: %w", categoryID, err)
	}
	return questions, nil
}

// SearchQuestions implements domain.QuestionRepository. LIKE wildcards in
// term are escaped so the term always matches literally.
func (a *QuestionDatabaseAdapter) SearchQuestions(ctx context.Context, term string) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE question ILIKE $1 ORDER BY id`
	pattern := "%" + likeEscaper.Replace(term) + "%"
	questions, err := a.selectQuestions(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	return questions, nil
}

// ListQuestionIDs implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestionIDs(ctx context.Context, categoryID int64) ([]int64, error) {
	var (
		ids  []int64
		err  error
		exec = GetExecutor(ctx, a.db)
	)
	if categoryID == domain.AllCategories {
		err = exec.SelectContext(ctx, &ids, `SELECT id FROM questions ORDER BY id`)
	} else {
		err = exec.SelectContext(ctx, &ids, `SELECT id FROM questions WHERE category = $1 ORDER BY id`, categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list question ids: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// CreateQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CreateQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot save nil question")
	}
	if err := question.Validate(); err != nil {
		return err
	}
	modelQuestion := toModelQuestion(question)

	query := `INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err := GetExecutor(ctx, a.db).GetContext(ctx, &id, query,
		modelQuestion.Question,
		modelQuestion.Answer,
		modelQuestion.Category,
		modelQuestion.Difficulty,
	)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}

	question.ID = id
	return nil
}

// DeleteQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) error {
	result, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewQuestionNotFoundError(id)
	}
	return nil
}

func (a *QuestionDatabaseAdapter) selectQuestions(ctx context.Context, query string, args ...interface{}) ([]*domain.Question, error) {
	var modelQuestions []models.Question
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &modelQuestions, query, args...); err != nil {
		return nil, err
	}

	questions := make([]*domain.Question, len(modelQuestions))
	for i := range modelQuestions {
		questions[i] = toDomainQuestion(&modelQuestions[i])
	}
	return questions, nil
}

func toDomainQuestion(q *models.Question) *domain.Question {
	return &domain.Question{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}
