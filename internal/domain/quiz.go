package domain

import (
	"fmt"
	"strings"
)

// AllCategories is the quiz category id meaning "draw from every category".
const AllCategories int64 = 0

// Category represents a trivia category such as "Science".
type Category struct {
	ID   int64
	Type string
}

// NewCategory creates a new Category instance
func NewCategory(categoryType string) *Category {
	return &Category{Type: strings.TrimSpace(categoryType)}
}

// Validate validates the category
func (c *Category) Validate() error {
	if c.Type == "" {
		return ValidationErrors{NewMissingFieldError("type")}
	}
	return nil
}

// Question is a single trivia question. Category is a plain reference to a
// Category ID; it is not checked against existing categories.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// NewQuestion creates a new Question instance
func NewQuestion(question, answer string, category int64, difficulty int) *Question {
	return &Question{
		Question:   strings.TrimSpace(question),
		Answer:     strings.TrimSpace(answer),
		Category:   category,
		Difficulty: difficulty,
	}
}

// Validate checks the required text fields.
func (q *Question) Validate() error {
	var errs ValidationErrors
	if q.Question == "" {
		errs = append(errs, NewMissingFieldError("question"))
	}
	if q.Answer == "" {
		errs = append(errs, NewMissingFieldError("answer"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (q *Question) String() string {
	return fmt.Sprintf("Question{id=%d category=%d}", q.ID, q.Category)
}

// QuizRound is the input of one quiz turn.
type QuizRound struct {
	CategoryID        int64
	PreviousQuestions []int64
}

// EligibleIDs returns candidates minus the ids already asked in this round,
// preserving the order of candidates.
func (r QuizRound) EligibleIDs(candidates []int64) []int64 {
	seen := make(map[int64]struct{}, len(r.PreviousQuestions))
	for _, id := range r.PreviousQuestions {
		seen[id] = struct{}{}
	}

	eligible := make([]int64, 0, len(candidates))
	for _, id := range candidates {
		if _, asked := seen[id]; !asked {
			eligible = append(eligible, id)
		}
	}
	return eligible
}
