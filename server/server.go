package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"davinci_debate/answer"
	"davinci_debate/search"
)

// Answerer is the part of answer.Answerer the server needs.
type Answerer interface {
	Answer(ctx context.Context, question string, topK int) (answer.Answer, error)
}

type Server struct {
	answerer Answerer
	logger   *log.Logger
	timeout  time.Duration
}

func New(a Answerer, logger *log.Logger) (*Server, error) {
	if a == nil {
		return nil, errors.New("answerer required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{answerer: a, logger: logger, timeout: 90 * time.Second}, nil
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.logMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/answer", s.handleAnswer)
	return r
}

// --- Handlers ---

type answerReq struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

type answerResp struct {
	ID       string          `json:"id"`
	Question string          `json:"question"`
	Answer   string          `json:"answer"`
	HTML     string          `json:"html"`
	Sources  []search.Result `json:"sources"`
}

func (s *Server) handleAnswer(c *gin.Context) {
	var req answerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()
	ans, err := s.answerer.Answer(ctx, req.Question, req.TopK)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	html, err := answer.RenderHTML(ans.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, answerResp{
		ID:       uuid.NewString(),
		Question: ans.Question,
		Answer:   ans.Text,
		HTML:     html,
		Sources:  ans.Sources,
	})
}

// --- Helpers ---

func statusFor(err error) int {
	switch {
	case errors.Is(err, answer.ErrEmptyQuestion):
		return http.StatusBadRequest
	case errors.Is(err, search.ErrNoResults):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}
