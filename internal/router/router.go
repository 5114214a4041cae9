package router

import (
	"time"
	"trivia-api/internal/handler"
	"trivia-api/internal/middleware"
	"trivia-api/internal/util"
	"trivia-api/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	CORS           middleware.CORSConfig
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	BodyLimit      int
	MetricsEnabled bool
	SwaggerEnabled bool
}

// DefaultConfig returns a Config with permissive CORS and no optional endpoints.
func DefaultConfig() Config {
	return Config{
		CORS:         middleware.DefaultCORSConfig(),
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
		BodyLimit:    1024 * 1024,
	}
}

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Category  *handler.CategoryHandler
	Question  *handler.QuestionHandler
	Quiz      *handler.QuizHandler
	Health    *handler.HealthHandler
	Validator *validation.Validator
}

// New builds the fiber app with the middleware chain and every route.
func New(cfg Config, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.ReadTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.CORSHeaders(cfg.CORS))
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: util.NewULID,
	}))
	if cfg.MetricsEnabled {
		app.Use(middleware.Metrics())
	}
	app.Use(middleware.RequestLogger())
	app.Use(middleware.CORSPreflight(cfg.CORS))
	app.Use(recover.New())

	if cfg.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}
	if cfg.SwaggerEnabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}
	if h.Health != nil {
		app.Get("/healthz", h.Health.Health)
	}

	vm := middleware.NewValidationMiddleware(h.Validator)

	app.Get("/categories", h.Category.GetCategories)
	app.Get("/categories/:id<int>/questions", vm.ValidatePage(), h.Category.GetCategoryQuestions)

	app.Get("/questions", vm.ValidatePage(), h.Question.GetQuestions)
	app.Post("/questions", vm.ValidatePage(), h.Question.CreateQuestion)
	app.Post("/questions/search", h.Question.SearchQuestions)
	app.Delete("/questions/:id<int>", vm.ValidatePage(), h.Question.DeleteQuestion)

	app.Post("/quizzes", h.Quiz.PlayQuiz)

	return app
}
