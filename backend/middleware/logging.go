package middleware

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggingMiddleware writes one line per request once the handler chain has
// finished. It must run after requestid so the id is available.
func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if err != nil {
			// the error handler has not run yet, so the status is still 200
			status = fiber.StatusInternalServerError
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		line := fmt.Sprintf("%s %s %s %d %v rid=%s",
			c.IP(),
			c.Method(),
			c.Path(),
			status,
			time.Since(start),
			c.GetRespHeader(fiber.HeaderXRequestID),
		)
		if err != nil {
			line += " err=" + err.Error()
		}
		logger.Println(line)

		return err
	}
}
