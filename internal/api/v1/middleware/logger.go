// Package middleware provides HTTP middleware for the API
package middleware

import (
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	log "github.com/clienttrack/clienttrack/internal/logger"
)

// Logger returns a middleware that logs HTTP requests
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.New().String()
		c.Locals("request_id", requestID)

		// Continue chain
		err := c.Next()

		// After request
		stop := time.Now()
		latency := stop.Sub(start)

		log.InfoWithFields("Request", map[string]interface{}{
			"timestamp":  stop.Format("2006/01/02 - 15:04:05"),
			"request_id": requestID,
			"status":     c.Response().StatusCode(),
			"latency":    latency,
			"ip":         c.IP(),
			"method":     c.Method(),
			"path":       c.Path(),
			"handler":    c.Route().Name,
		})

		return err
	}
}
