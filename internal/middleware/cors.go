package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORSConfig lists the values advertised on every response.
type CORSConfig struct {
	AllowOrigins string
	AllowHeaders []string
	AllowMethods []string
}

// DefaultCORSConfig allows any origin.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: "*",
		AllowHeaders: []string{"Content-Type", "Authorization"},
		AllowMethods: []string{"GET", "PUT", "POST", "DELETE", "PATCH", "OPTIONS"},
	}
}

// CORSHeaders sets the Access-Control-Allow-* headers before the rest of the
// chain runs, so error responses carry them as well.
func CORSHeaders(cfg CORSConfig) fiber.Handler {
	headers := strings.Join(cfg.AllowHeaders, ", ")
	methods := strings.Join(cfg.AllowMethods, ",")
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, cfg.AllowOrigins)
		c.Set(fiber.HeaderAccessControlAllowHeaders, headers)
		c.Set(fiber.HeaderAccessControlAllowMethods, methods)
		return c.Next()
	}
}

// CORSPreflight answers OPTIONS preflight requests sent by browsers. The cors
// middleware strips spaces from its header list, so the advertised values are
// restored afterwards to match CORSHeaders.
func CORSPreflight(cfg CORSConfig) fiber.Handler {
	headers := strings.Join(cfg.AllowHeaders, ", ")
	methods := strings.Join(cfg.AllowMethods, ",")
	preflight := cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: headers,
		AllowMethods: methods,
		MaxAge:       300,
	})
	return func(c *fiber.Ctx) error {
		err := preflight(c)
		if c.Method() == fiber.MethodOptions {
			c.Set(fiber.HeaderAccessControlAllowHeaders, headers)
			c.Set(fiber.HeaderAccessControlAllowMethods, methods)
		}
		return err
	}
}
