// Package httpapi wires the HTTP transport (Gin) to the application service,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, compression,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Static frontend assets tried before the catch-all capability list
package httpapi

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/dealerhub/go-vehicle-backend/docs"
	"github.com/dealerhub/go-vehicle-backend/internal/config"
	"github.com/dealerhub/go-vehicle-backend/internal/domain"
	"github.com/dealerhub/go-vehicle-backend/internal/http/handlers"
	"github.com/dealerhub/go-vehicle-backend/internal/http/middleware"
	"github.com/dealerhub/go-vehicle-backend/internal/repo"
	"github.com/dealerhub/go-vehicle-backend/internal/services"
)

// vehicleRepoShim adapts the repository free functions to the
// services.VehicleRepo interface expected by the VehicleService. This keeps
// the service decoupled from the concrete repo package while reusing the
// existing functions.
type vehicleRepoShim struct{}

// ListVehicles proxies repo.ListVehicles.
func (vehicleRepoShim) ListVehicles(ctx context.Context, db *gorm.DB) ([]domain.Vehicle, error) {
	return repo.ListVehicles(ctx, db)
}

// GetVehicle proxies repo.GetVehicle.
func (vehicleRepoShim) GetVehicle(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error) {
	return repo.GetVehicle(ctx, db, id)
}

// CreateVehicle proxies repo.CreateVehicle.
func (vehicleRepoShim) CreateVehicle(ctx context.Context, db *gorm.DB, v *domain.Vehicle) error {
	return repo.CreateVehicle(ctx, db, v)
}

// UpdateVehicle proxies repo.UpdateVehicle.
func (vehicleRepoShim) UpdateVehicle(ctx context.Context, db *gorm.DB, id int64, fields map[string]any) (*domain.Vehicle, error) {
	return repo.UpdateVehicle(ctx, db, id, fields)
}

// DeleteVehicle proxies repo.DeleteVehicle.
func (vehicleRepoShim) DeleteVehicle(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error) {
	return repo.DeleteVehicle(ctx, db, id)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine: observability (tracing, metrics), rate limiting, compression, CORS
// and security headers, health and metrics endpoints, the vehicle API, static
// frontend serving, and the catch-all route list.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per client IP)
//  8. Gzip compression
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 8) Compress responses; metrics stays uncompressed for scrapers
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 9) CORS posture (safe defaults: allow all if none configured, like the
	// frontend has always expected)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: handlers ← service ← repo/db
	vehicleSvc := services.NewVehicleService(db, vehicleRepoShim{})
	h := handlers.New(vehicleSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api"
	{
		api.GET("/test", h.Status)

		api.GET("/veiculos", h.ListVehicles)
		api.GET("/veiculos/:id", h.GetVehicle)
		api.POST("/veiculos", h.CreateVehicle)
		api.PUT("/veiculos/:id", h.UpdateVehicle)
		api.DELETE("/veiculos/:id", h.DeleteVehicle)
	}

	// Fallback: static frontend first, then the capability list.
	r.NoRoute(staticOrRouteList(cfg.StaticDir))
}

// staticOrRouteList serves a file from staticDir when one matches the request
// path (directories resolve to index.html), otherwise replies with the
// documented route list. An empty staticDir disables static serving.
func staticOrRouteList(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if staticDir != "" && (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) {
			// Clean with a leading slash so ".." cannot escape staticDir.
			rel := filepath.Clean("/" + c.Request.URL.Path)
			p := filepath.Join(staticDir, rel)
			if fi, err := os.Stat(p); err == nil {
				if fi.IsDir() {
					p = filepath.Join(p, "index.html")
					if _, err := os.Stat(p); err != nil {
						handlers.RouteNotFound(c)
						return
					}
				}
				c.File(p)
				return
			}
		}
		handlers.RouteNotFound(c)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
