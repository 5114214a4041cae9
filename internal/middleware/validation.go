package middleware

import (
	"trivia-api/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PageLocalKey is the fiber.Ctx local holding the validated page number.
const PageLocalKey = "validated_page"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	if v == nil {
		v = validation.NewValidator()
	}
	return &ValidationMiddleware{validator: v}
}

// ValidatePage parses the page query parameter (default 1) and stores it for
// the handler. A non-integer page is rejected.
func (vm *ValidationMiddleware) ValidatePage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, errs := vm.validator.ValidatePage(c.Query("page"))
		if len(errs) > 0 {
			return errs // This will be handled by ErrorHandler
		}

		c.Locals(PageLocalKey, page)
		return c.Next()
	}
}

// Page returns the page stored by ValidatePage, or 1 if the middleware did not run.
func Page(c *fiber.Ctx) int {
	if page, ok := c.Locals(PageLocalKey).(int); ok {
		return page
	}
	return 1
}
