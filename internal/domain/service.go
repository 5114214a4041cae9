package domain

import "context"

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// ListCategories returns all categories ordered by id
	ListCategories(ctx context.Context) ([]*Category, error)

	// CreateCategory persists a new category and sets its ID
	CreateCategory(ctx context.Context, category *Category) error
}

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	// ListQuestions returns all questions ordered by id
	ListQuestions(ctx context.Context) ([]*Question, error)

	// GetQuestion returns nil, nil when no question has the id
	GetQuestion(ctx context.Context, id int64) (*Question, error)

	// ListQuestionsByCategory returns the questions of one category ordered by id
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*Question, error)

	// SearchQuestions matches term as a case-insensitive substring of the question text
	SearchQuestions(ctx context.Context, term string) ([]*Question, error)

	// ListQuestionIDs returns question ids of a category, or of all
	// categories when categoryID is AllCategories
	ListQuestionIDs(ctx context.Context, categoryID int64) ([]int64, error)

	// CreateQuestion persists a new question and sets its ID
	CreateQuestion(ctx context.Context, question *Question) error

	// DeleteQuestion returns a NOT_FOUND DomainError when nothing was deleted
	DeleteQuestion(ctx context.Context, id int64) error
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
