// Package api exposes the almanac over HTTP: engine lookups, profile
// management, and cached report generation, on a gin router.
package api

import (
	"errors"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/celestialworks/almanac/ephemeris"
	"github.com/celestialworks/almanac/internal/geocode"
	"github.com/celestialworks/almanac/internal/logging"
	"github.com/celestialworks/almanac/internal/observability"
	"github.com/celestialworks/almanac/internal/report"
	"github.com/celestialworks/almanac/internal/storage"
)

const tracerServiceName = "almanac-api"

// Deps are the router's wired dependencies. Log, Geocoder, and Collector
// are optional; the rest are required.
type Deps struct {
	Log       logging.Logger
	Store     storage.Store
	Generator *report.Generator
	Engine    *ephemeris.Engine
	Geocoder  geocode.Geocoder
	Collector *observability.Collector
}

// NewRouter builds the HTTP surface with its middleware chain and
// routes.
func NewRouter(deps Deps) (*gin.Engine, error) {
	if deps.Store == nil {
		return nil, errors.New("api: store is required")
	}
	if deps.Generator == nil {
		return nil, errors.New("api: report generator is required")
	}
	if deps.Engine == nil {
		return nil, errors.New("api: position engine is required")
	}
	if deps.Log == nil {
		deps.Log = logging.Noop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID(deps.Log))
	router.Use(RequestLogger(deps.Log))
	router.Use(otelgin.Middleware(tracerServiceName))
	router.Use(corsMiddleware())
	if deps.Collector != nil {
		router.Use(deps.Collector.GinMiddleware())
	}

	h := &handlers{
		log:       deps.Log,
		store:     deps.Store,
		generator: deps.Generator,
		engine:    deps.Engine,
		geocoder:  deps.Geocoder,
		collector: deps.Collector,
	}

	router.GET("/healthz", h.health)

	v1 := router.Group("/v1")
	{
		v1.GET("/positions", h.positions)
		v1.GET("/aspects", h.aspects)
		v1.GET("/gates", h.gates)

		v1.POST("/profiles", h.createProfile)
		v1.GET("/profiles", h.listProfiles)
		v1.GET("/profiles/:id", h.getProfile)
		v1.PUT("/profiles/:id", h.updateProfile)
		v1.DELETE("/profiles/:id", h.deleteProfile)

		v1.GET("/profiles/:id/report", h.report)
		v1.GET("/profiles/:id/calendar", h.calendar)
	}

	return router, nil
}

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	})
}
