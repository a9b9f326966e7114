// Package server exposes the scoring engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/extract"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/scoring"
)

const shutdownTimeout = 15 * time.Second

// Scorer is the part of the engine the API needs.
type Scorer interface {
	Score(ctx context.Context, req scoring.Request) scoring.Result
	Keywords(text string) scoring.KeywordAnalysis
	Roles() []scoring.RoleTemplate
	AIEnabled() bool
}

// Config holds listener settings.
type Config struct {
	Address      string        `mapstructure:"address" validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout" validate:"gte=0"`
	WriteTimeout time.Duration `mapstructure:"write-timeout" validate:"gte=0"`
}

// Server wraps an echo instance bound to a Scorer.
type Server struct {
	echo     *echo.Echo
	scorer   Scorer
	validate *validator.Validate
	cfg      Config
	logger   *zap.Logger
}

// New builds the server and registers its routes.
func New(scorer Scorer, cfg Config, log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	s := &Server{
		echo:     e,
		scorer:   scorer,
		validate: validator.New(),
		cfg:      cfg,
		logger:   logger.WithFields(log, zap.String("component", "server")),
	}

	e.HTTPErrorHandler = s.handleError

	e.Use(requestID())
	e.Use(requestLogger(s.logger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	e.GET("/health", s.health)

	v1 := e.Group("/api/v1")
	v1.POST("/score", s.score)
	v1.POST("/keywords", s.keywords)
	v1.GET("/roles", s.roles)

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("address", s.cfg.Address))
		errCh <- s.echo.Start(s.cfg.Address)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.echo.Shutdown(shutdownCtx)
}

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	resp := errorResponse{Error: "internal_error", Message: http.StatusText(status), RequestID: requestIDFrom(c)}

	var httpErr *echo.HTTPError
	if extractErr, ok := extract.IsExtractionError(err); ok {
		status = http.StatusUnprocessableEntity
		if extractErr.Kind == extract.KindTooLarge {
			status = http.StatusRequestEntityTooLarge
		}
		resp.Error = string(extractErr.Kind)
		resp.Message = extractErr.Error()
		err = nil
	}

	switch {
	case err == nil:
	case errors.As(err, &httpErr):
		status = httpErr.Code
		resp.Error = errorCode(status)
		resp.Message = messageOf(httpErr)
	default:
		s.logger.Error("unhandled request error", zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, resp)
	}
	if err != nil {
		s.logger.Warn("writing error response failed", zap.Error(err))
	}
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "request_too_large"
	default:
		return "error"
	}
}

func messageOf(err *echo.HTTPError) string {
	if msg, ok := err.Message.(string); ok {
		return msg
	}
	if err.Internal != nil {
		return err.Internal.Error()
	}
	return http.StatusText(err.Code)
}
