package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jask/citycoords/internal/geocoding"
)

// Upstream is the OpenWeatherMap surface the proxy forwards to.
type Upstream interface {
	Geocode(ctx context.Context, query string) ([]geocoding.Location, error)
	AirPollution(ctx context.Context, lat, lon float64) (*geocoding.AirQuality, error)
}

type Handler struct {
	upstream Upstream
	hasKey   bool
	logger   *zap.Logger
}

func NewHandler(upstream Upstream, hasKey bool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{upstream: upstream, hasKey: hasKey, logger: logger}
}

// PollutionQuery holds the coordinates for /api/pollution.
type PollutionQuery struct {
	Lat *float64 `form:"lat" binding:"required,gte=-90,lte=90"`
	Lon *float64 `form:"lon" binding:"required,gte=-180,lte=180"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Geocode returns the best match for ?q=, or 404 when there is none.
func (h *Handler) Geocode(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a city name is required"})
		return
	}
	if !h.hasKey {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "api key is not configured"})
		return
	}

	locs, err := h.upstream.Geocode(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("geocode upstream failed", zap.String("query", q), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "error contacting OpenWeatherMap: " + err.Error()})
		return
	}
	if len(locs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no match for " + q})
		return
	}
	c.JSON(http.StatusOK, locs[0])
}

// Pollution returns current air quality for ?lat=&lon=.
func (h *Handler) Pollution(c *gin.Context) {
	if strings.TrimSpace(c.Query("lat")) == "" || strings.TrimSpace(c.Query("lon")) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required"})
		return
	}
	var in PollutionQuery
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates: " + err.Error()})
		return
	}
	if !h.hasKey {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "api key is not configured"})
		return
	}

	aq, err := h.upstream.AirPollution(c.Request.Context(), *in.Lat, *in.Lon)
	if errors.Is(err, geocoding.ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no air quality data for coordinates"})
		return
	}
	if err != nil {
		h.logger.Error("air pollution upstream failed",
			zap.Float64("lat", *in.Lat),
			zap.Float64("lon", *in.Lon),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "error contacting OpenWeatherMap: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, aq)
}
