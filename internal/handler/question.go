package handler

import (
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"
	"trivia-api/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	service   service.QuestionService
	validator *validation.Validator
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService, validator *validation.Validator) *QuestionHandler {
	return &QuestionHandler{
		service:   service,
		validator: validator,
	}
}

// GetQuestions godoc
// @Summary List questions
// @Description Returns one page of questions (10 per page) with the category list
// @Tags questions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.QuestionsPageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) GetQuestions(c *fiber.Ctx) error {
	resp, err := h.service.ListQuestions(c.UserContext(), middleware.Page(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Deletes a question and returns the requested page of the remaining ones
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.DeleteQuestionResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", c.Params("id"))}
	}

	resp, err := h.service.DeleteQuestion(c.UserContext(), int64(id), middleware.Page(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateQuestion godoc
// @Summary Create a question
// @Description Stores a new question and returns the requested page of all questions
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question details"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.CreateQuestionResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Malformed create question body", zap.Error(err))
		return domain.NewUnprocessableError("Malformed request body", err)
	}

	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	resp, err := h.service.CreateQuestion(c.UserContext(), &req, middleware.Page(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SearchQuestions godoc
// @Summary Search questions
// @Description Returns every question whose text contains searchTerm, case-insensitive
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.SearchQuestionsRequest true "Search term"
// @Success 200 {object} dto.SearchQuestionsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /questions/search [post]
func (h *QuestionHandler) SearchQuestions(c *fiber.Ctx) error {
	var req dto.SearchQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewUnprocessableError("Malformed request body", err)
	}

	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	resp, err := h.service.SearchQuestions(c.UserContext(), *req.SearchTerm)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
