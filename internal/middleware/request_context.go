package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"receptbox/pkg/events"
)

// NewRequestContextMiddleware attaches a trace id to the request's user
// context, honoring an incoming X-Trace-Id header when present so traces
// survive the HTTP boundary.
func NewRequestContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := strings.TrimSpace(c.Get("X-Trace-Id"))
		if traceID == "" {
			traceID = events.GenerateTraceID()
		}

		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}

		userCtx = context.WithValue(userCtx, "TraceID", traceID)

		c.SetUserContext(userCtx)
		c.Set("X-Trace-Id", traceID)
		return c.Next()
	}
}
