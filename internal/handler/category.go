package handler

import (
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categories service.CategoryService
	questions  service.QuestionService
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(categories service.CategoryService, questions service.QuestionService) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		questions:  questions,
	}
}

// GetCategories godoc
// @Summary List categories
// @Description Returns the type of every category ordered by id
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categories.ListCategories(c.UserContext())
	if err != nil {
		return domain.NewError(domain.ErrNotFound, "Failed to load categories", err)
	}

	return c.JSON(dto.CategoriesResponse{
		Success:    true,
		Categories: dto.CategoryTypes(categories),
	})
}

// GetCategoryQuestions godoc
// @Summary List questions of a category
// @Description Returns one page of the questions whose category equals id
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.CategoryQuestionsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /categories/{id}/questions [get]
func (h *CategoryHandler) GetCategoryQuestions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", c.Params("id"))}
	}

	resp, err := h.questions.ListQuestionsByCategory(c.UserContext(), int64(id), middleware.Page(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
