package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boutiqo/server/internal/assistant"
	errx "github.com/boutiqo/server/internal/core/error"
	logx "github.com/boutiqo/server/pkg/logger"
)

// Config holds the HTTP listener settings.
type Config struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8080"`
}

// Server exposes the assistant over HTTP.
type Server struct {
	engine    *gin.Engine
	assistant *assistant.Service
}

func New(svc *assistant.Service) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{engine: engine, assistant: svc}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	ai := s.engine.Group("/ai")
	ai.POST("/analyze", s.handleAnalyze)
	ai.POST("/suggest-photo", s.handleSuggestPhoto)
}

// Handler returns the underlying http.Handler, mainly for tests and for
// the graceful-shutdown wrapper in main.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type analyzeRequest struct {
	Question string `json:"question" binding:"required"`
	ShopID   string `json:"shopId"`
}

type analyzeResponse struct {
	Answer string `json:"answer"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	answer, err := s.assistant.Analyze(c.Request.Context(), req.Question, req.ShopID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, analyzeResponse{Answer: answer})
}

type suggestPhotoRequest struct {
	Name string `json:"name" binding:"required"`
}

type suggestPhotoResponse struct {
	URLs []string `json:"urls"`
}

func (s *Server) handleSuggestPhoto(c *gin.Context) {
	var req suggestPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	c.JSON(http.StatusOK, suggestPhotoResponse{URLs: assistant.SuggestPhoto(req.Name)})
}

// renderError maps AppError statuses to the response; everything else is a
// generic 500 so internals never leak to the caller.
func (s *Server) renderError(c *gin.Context, err error) {
	var appErr *errx.AppError
	if errors.As(err, &appErr) {
		logx.Error().Err(err).Int("status", appErr.Status).Msg("request failed")
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}
	logx.Error().Err(err).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": errx.SystemErrorMessage})
}
