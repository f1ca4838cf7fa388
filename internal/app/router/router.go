package router

import (
	"net/http"
	"slices"
	"time"

	"crypto_dashboard/internal/app/di"
	"crypto_dashboard/internal/platform/http/middleware"
	"crypto_dashboard/internal/platform/metrics"
	"crypto_dashboard/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options configures the parts of the router that depend on deployment.
type Options struct {
	CORSOrigins []string
	// MetricsPath mounts the Prometheus handler; empty disables it.
	MetricsPath string
	Metrics     *metrics.Recorder
}

func NewRouter(h di.Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(opts.Metrics), gin.Recovery())

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	}

	// dashboard page
	r.GET("/", web.Index)

	// liveness / readiness
	r.GET("/healthz", h.Health.Handle)
	r.HEAD("/healthz", h.Health.Handle)
	r.OPTIONS("/healthz", h.Health.Handle)

	if opts.MetricsPath != "" && opts.Metrics != nil {
		r.GET(opts.MetricsPath, gin.WrapH(opts.Metrics.Handler()))
	}

	api := r.Group("/api/v1")
	{
		api.GET("/dashboard", h.Dashboard.GetDashboard)
		api.GET("/export.csv", h.Dashboard.ExportCSV)
		api.GET("/options", h.Dashboard.Options)
		api.GET("/pairs", h.Pairs.List)
		api.GET("/candles/:pair", h.Candles.GetCandlesHandler)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
