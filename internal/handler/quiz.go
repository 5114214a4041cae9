package handler

import (
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/service"
	"trivia-api/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// PlayQuiz godoc
// @Summary Get the next quiz question
// @Description Returns a random question of quiz_category (id 0 for all categories) that is not in previous_questions. question is null once every question was asked.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Quiz state"
// @Success 200 {object} dto.QuizResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) PlayQuiz(c *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewUnprocessableError("Malformed request body", err)
	}

	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	resp, err := h.service.NextQuestion(c.UserContext(), req.Round())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
