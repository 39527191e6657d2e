package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/nulzo/provider-metrics-api/internal/catalog"
	"github.com/nulzo/provider-metrics-api/internal/config"
	"github.com/nulzo/provider-metrics-api/internal/server/middleware"
	"github.com/nulzo/provider-metrics-api/internal/server/validator"
)

type Server struct {
	router  *gin.Engine
	config  *config.Config
	logger  *zap.Logger
	service *catalog.Service
}

func New(cfg *config.Config, logger *zap.Logger, service *catalog.Service) *Server {

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	validator.InitValidator()

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.Logger(logger))
	if cfg.Tracing.Enabled {
		engine.Use(otelgin.Middleware("provider-metrics-api"))
	}

	s := &Server{
		router:  engine,
		service: service,
		logger:  logger,
		config:  cfg,
	}

	s.SetupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run blocks serving the query API on the configured port.
func (s *Server) Run() error {
	return s.router.Run(":" + s.config.Server.Port)
}
