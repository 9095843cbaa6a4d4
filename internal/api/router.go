package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jask/citycoords/internal/config"
)

// NewRouter wires middleware and routes. The OpenWeatherMap key never
// leaves the server; browsers only see /api/*.
func NewRouter(cfg config.ServerConfig, h *Handler, logger *zap.Logger) (*gin.Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	corsMW, err := CORS(cfg.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(corsMW)

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	if cfg.RatePerMinute > 0 {
		api.Use(NewIPRateLimiter(cfg.RatePerMinute, cfg.Burst, logger).RateLimit())
	}
	api.GET("/geocode", h.Geocode)
	api.GET("/pollution", h.Pollution)

	return r, nil
}
