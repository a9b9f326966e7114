package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/logger"
)

const (
	headerRequestID = echo.HeaderXRequestID
	ctxRequestID    = "request_id"
	ctxLogger       = "logger"

	// Room for a maximum-size résumé plus a job description and JSON overhead.
	bodyLimit = "8M"
)

// requestID reuses a caller-supplied X-Request-ID or generates a new one and
// echoes it back.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(headerRequestID)
			if id == "" {
				id = uuid.NewString()
			}

			c.Set(ctxRequestID, id)
			c.Response().Header().Set(headerRequestID, id)
			return next(c)
		}
	}
}

func requestLogger(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			log := logger.WithRequestID(base, requestIDFrom(c))
			c.Set(ctxLogger, log)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			log.Info("request served",
				zap.String("method", req.Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}

func requestIDFrom(c echo.Context) string {
	if id, ok := c.Get(ctxRequestID).(string); ok {
		return id
	}
	return ""
}

func loggerFrom(c echo.Context, fallback *zap.Logger) *zap.Logger {
	if log, ok := c.Get(ctxLogger).(*zap.Logger); ok {
		return log
	}
	return fallback
}
