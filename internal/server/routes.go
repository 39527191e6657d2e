package server

import (
	"github.com/nulzo/provider-metrics-api/internal/server/middleware"
	v1 "github.com/nulzo/provider-metrics-api/internal/server/v1"
)

func (s *Server) SetupRoutes() {
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.ErrorHandler(s.logger))

	// Health Check (Public)
	healthHandler := v1.NewHealthHandler()
	s.router.GET("/health", healthHandler.Health)

	// Query API
	api := s.router.Group("/api")
	limiter := middleware.NewRateLimiter(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst, s.logger)
	api.Use(limiter.Middleware())
	{
		handler := v1.NewHandler(s.service)
		api.GET("/models", handler.ListModels)
		api.GET("/models/search", handler.SearchModels)
		api.GET("/get_providers", handler.GetProviders)
	}
}
