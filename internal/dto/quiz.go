package dto

import "trivia-api/internal/domain"

// QuestionDTO is the JSON representation of a question
// @Description Question information
type QuestionDTO struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// NewQuestionDTO serializes a domain question.
func NewQuestionDTO(q *domain.Question) QuestionDTO {
	return QuestionDTO{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// NewQuestionDTOs serializes a list of questions. The result is never nil so
// that it encodes as [] rather than null.
func NewQuestionDTOs(questions []*domain.Question) []QuestionDTO {
	out := make([]QuestionDTO, len(questions))
	for i, q := range questions {
		out[i] = NewQuestionDTO(q)
	}
	return out
}

// CategoryTypes returns the type labels of categories in the given order.
func CategoryTypes(categories []*domain.Category) []string {
	types := make([]string, len(categories))
	for i, c := range categories {
		types[i] = c.Type
	}
	return types
}

// CategoriesResponse is returned by GET /categories
type CategoriesResponse struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
}

// QuestionsPageResponse is returned by GET /questions
type QuestionsPageResponse struct {
	Success         bool          `json:"success"`
	Questions       []QuestionDTO `json:"questions"`
	TotalQuestions  int           `json:"total_questions"`
	CurrentCategory []string      `json:"current_category"`
	Categories      []string      `json:"categories"`
}

// DeleteQuestionResponse is returned by DELETE /questions/{id}
type DeleteQuestionResponse struct {
	Success   bool          `json:"success"`
	Deleted   int64         `json:"deleted"`
	Questions []QuestionDTO `json:"questions"`
}

// CreateQuestionRequest is the body of POST /questions
// @Description Request body for creating a question
type CreateQuestionRequest struct {
	Question   string `json:"question" validate:"required,max=1000"`
	Answer     string `json:"answer" validate:"required,max=1000"`
	Category   *int64 `json:"category" validate:"required"`
	Difficulty *int   `json:"difficulty" validate:"required"`
}

// CreateQuestionResponse is returned by POST /questions
type CreateQuestionResponse struct {
	Success        bool          `json:"success"`
	Created        int64         `json:"created"`
	Questions      []QuestionDTO `json:"questions"`
	TotalQuestions int           `json:"total_questions"`
}

// SearchQuestionsRequest is the body of POST /questions/search
type SearchQuestionsRequest struct {
	SearchTerm *string `json:"searchTerm" validate:"required"`
}

// SearchQuestionsResponse is returned by POST /questions/search
type SearchQuestionsResponse struct {
	Success         bool          `json:"success"`
	TotalQuestions  int           `json:"total_questions"`
	Questions       []QuestionDTO `json:"questions"`
	CurrentCategory []string      `json:"current_category"`
}

// CategoryQuestionsResponse is returned by GET /categories/{id}/questions
type CategoryQuestionsResponse struct {
	Success         bool          `json:"success"`
	Questions       []QuestionDTO `json:"questions"`
	TotalQuestions  int           `json:"total_questions"`
	CurrentCategory int64         `json:"current_category"`
}

// QuizCategory identifies the category a quiz is played in. ID 0 means all
// categories.
type QuizCategory struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// QuizRequest is the body of POST /quizzes
// @Description Request body for the next quiz question
type QuizRequest struct {
	PreviousQuestions []int64       `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
}

// Round converts the request into a domain quiz round.
func (r *QuizRequest) Round() domain.QuizRound {
	round := domain.QuizRound{PreviousQuestions: r.PreviousQuestions}
	if r.QuizCategory != nil {
		round.CategoryID = r.QuizCategory.ID
	}
	return round
}

// QuizResponse is returned by POST /quizzes. Question is null once the pool
// of eligible questions is exhausted.
type QuizResponse struct {
	Success  bool         `json:"success"`
	Question *QuestionDTO `json:"question"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /healthz
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
