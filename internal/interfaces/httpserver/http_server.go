package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chapter-api/internal/config"
	middleware "chapter-api/internal/interfaces/httpserver/middlewares"
	v1 "chapter-api/internal/interfaces/httpserver/routes/v1"
)

type HTTPServer struct {
	engine  *gin.Engine
	v1Route *v1.V1Route
	config  *config.Config
}

func NewHttpServer(
	v1Route *v1.V1Route,
	logger zerolog.Logger,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		gin.New(),
		v1Route,
		cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.LoggingMiddleware(logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	return &server
}

// Engine exposes the router, mainly for tests.
func (s *HTTPServer) Engine() *gin.Engine {
	return s.engine
}

func (s *HTTPServer) Run() error {
	root := s.engine.Group("/")
	s.v1Route.RegisterRouter(root)

	if err := s.engine.Run(fmt.Sprintf(":%d", s.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
