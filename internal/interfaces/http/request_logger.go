package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panastock-api/pkg/logger"
)

// RequestLogger registra cada request con método, ruta, status y latencia.
// Los errores de handler se loguean en warn/error según el status resultante.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if userID := GetUserID(c); userID != "" {
			ev.Str("userId", userID)
		}
		ev.Msg("request")
		return err
	}
}
