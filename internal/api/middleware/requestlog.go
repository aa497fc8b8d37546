package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// healthPaths are probe endpoints whose repeated successes are suppressed
// from the request log. Failures are always logged.
var healthPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided and propagates it through
// the response header and echo context.
//
// Probe paths get special treatment: the first success per path is logged,
// repeated successes are suppressed so probes do not flood the log, and any
// failure is logged at WARN.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var mu sync.Mutex
	healthLogged := make(map[string]bool)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			method := c.Request().Method
			path := c.Request().URL.Path
			status := c.Response().Status
			fields := []any{
				"method", method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			}

			if _, health := healthPaths[path]; health {
				ok := status >= 200 && status < 300
				if !ok {
					log.Warn("request", fields...)
					return err
				}

				mu.Lock()
				seen := healthLogged[path]
				healthLogged[path] = true
				mu.Unlock()
				if seen {
					return err
				}
			}

			log.Info("request", fields...)
			return err
		}
	}
}
