package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/extract"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/scoring"
)

type scoreRequest struct {
	ResumeText     string `json:"resumeText" validate:"max=5242880"`
	JobDescription string `json:"jobDescription" validate:"max=51200"`
}

type keywordsRequest struct {
	ResumeText string `json:"resumeText" validate:"max=5242880"`
}

type healthResponse struct {
	Status    string `json:"status"`
	AIEnabled bool   `json:"aiEnabled"`
}

type rolesResponse struct {
	Roles []scoring.RoleTemplate `json:"roles"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", AIEnabled: s.scorer.AIEnabled()})
}

func (s *Server) roles(c echo.Context) error {
	return c.JSON(http.StatusOK, rolesResponse{Roles: s.scorer.Roles()})
}

func (s *Server) score(c echo.Context) error {
	var req scoreRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	text, err := extract.FromText(req.ResumeText)
	if err != nil {
		return err
	}

	log := loggerFrom(c, s.logger)
	log.Debug("scoring resume",
		zap.Int("resume_length", len(text)),
		zap.Bool("job_description", req.JobDescription != ""),
	)

	result := s.scorer.Score(c.Request().Context(), scoring.Request{
		ResumeText:     text,
		JobDescription: req.JobDescription,
	})

	log.Debug("resume scored", logger.ScoreFields(string(result.ScoreSource), result.ATSScore)...)
	return c.JSON(http.StatusOK, result)
}

func (s *Server) keywords(c echo.Context) error {
	var req keywordsRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	text, err := extract.FromText(req.ResumeText)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, s.scorer.Keywords(text))
}

func (s *Server) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	if err := s.validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
