// Package gin exposes the profiler over HTTP: a synchronous scrape endpoint
// and the persona questionnaire webhook.
package gin

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/MelvilleC99/profiler"
	"github.com/gin-gonic/gin"
)

// Server wires the pipeline and stores into a gin router.
type Server struct {
	runner   profiler.JobRunner
	jobs     profiler.JobService
	personas profiler.PersonaService
	logger   *slog.Logger
	router   *gin.Engine
}

// NewServer creates a Server and registers its routes.
func NewServer(runner profiler.JobRunner, jobs profiler.JobService, personas profiler.PersonaService, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		runner:   runner,
		jobs:     jobs,
		personas: personas,
		logger:   logger,
		router:   gin.New(),
	}
	s.router.Use(gin.Recovery())

	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	api.POST("/scrape", s.handleScrape)
	api.GET("/jobs/:id", s.handleGetJob)
	api.POST("/persona/sections/:section", s.handleUpsertPersona)
	api.GET("/persona/sections/:section", s.handleGetPersona)

	return s
}

// Handler returns the router for mounting or serving.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves the API on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

type scrapeRequest struct {
	URL    string `json:"url" binding:"required"`
	UserID string `json:"user_id"`
}

// handleScrape runs the full pipeline synchronously and returns the
// finished job. Failed jobs still return a body so the caller sees the
// crawl trace.
func (s *Server) handleScrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	job, err := s.runner.Run(c.Request.Context(), req.URL, req.UserID)
	if err != nil {
		s.logger.Error("scrape failed",
			slog.String("url", req.URL),
			slog.String("err", profiler.ErrorMessage(err)))
		c.JSON(statusFromError(err), gin.H{
			"error": profiler.ErrorMessage(err),
			"job":   job,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (s *Server) handleGetJob(c *gin.Context) {
	job, err := s.jobs.FindJobByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": profiler.ErrorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// handleUpsertPersona accepts a flat questionnaire payload: a session_id
// plus field/answer pairs, where "<field>_quality" keys carry the answer
// quality grade for their base field.
func (s *Server) handleUpsertPersona(c *gin.Context) {
	var payload map[string]string
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a flat JSON object of strings"})
		return
	}

	sessionID := payload["session_id"]
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	answers := normalizeAnswers(sessionID, c.Param("section"), payload)
	if len(answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no answers in payload"})
		return
	}

	if err := s.personas.UpsertAnswers(c.Request.Context(), answers); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": profiler.ErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "count": len(answers)})
}

func (s *Server) handleGetPersona(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	answers, err := s.personas.FindAnswers(c.Request.Context(), sessionID, c.Param("section"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": profiler.ErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answers": answers})
}

const qualitySuffix = "_quality"

// normalizeAnswers splits a flat payload into PersonaAnswer rows, pairing
// "<field>_quality" keys with their base field.
func normalizeAnswers(sessionID, section string, payload map[string]string) []*profiler.PersonaAnswer {
	byField := make(map[string]*profiler.PersonaAnswer)
	var order []string

	for key, value := range payload {
		if key == "session_id" || strings.HasSuffix(key, qualitySuffix) {
			continue
		}
		byField[key] = &profiler.PersonaAnswer{
			SessionID: sessionID,
			Section:   section,
			Field:     key,
			Answer:    value,
		}
		order = append(order, key)
	}
	for key, value := range payload {
		if !strings.HasSuffix(key, qualitySuffix) {
			continue
		}
		if a, ok := byField[strings.TrimSuffix(key, qualitySuffix)]; ok {
			a.Quality = value
		}
	}

	answers := make([]*profiler.PersonaAnswer, 0, len(byField))
	for _, key := range order {
		answers = append(answers, byField[key])
	}
	return answers
}

// statusFromError maps application error codes to HTTP status codes.
func statusFromError(err error) int {
	switch profiler.ErrorCode(err) {
	case profiler.EINVALID:
		return http.StatusBadRequest
	case profiler.ENOTFOUND:
		return http.StatusNotFound
	case profiler.ECONFLICT:
		return http.StatusConflict
	case profiler.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
