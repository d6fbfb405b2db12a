package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKey struct{}

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware reuses the caller's X-Request-ID or mints a new one,
// echoes it on the response and stores it in the user context.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Locals("request_id", id)
		c.SetUserContext(context.WithValue(c.UserContext(), requestIDKey{}, id))
		return c.Next()
	}
}

// RequestID extracts the id stored by RequestIDMiddleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if e, ok := chainErr.(*fiber.Error); ok {
			status = e.Code
		} else if chainErr != nil {
			status = fiber.StatusInternalServerError
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if id, ok := c.Locals("request_id").(string); ok {
			fields = append(fields, zap.String("request_id", id))
		}
		if claims := GetClaims(c); claims != nil {
			fields = append(fields, zap.String("user_id", claims.UserID))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request failed", append(fields, zap.Error(chainErr))...)
		case status >= fiber.StatusBadRequest:
			logger.Info("request rejected", fields...)
		default:
			logger.Debug("request", fields...)
		}
		return chainErr
	}
}
