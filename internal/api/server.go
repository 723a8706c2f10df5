// Package api exposes the ledger over HTTP: the action endpoint used by the
// browser client, a spreadsheet export, health and metrics.
package api

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/utang/internal/export"
	"github.com/mmynk/utang/internal/middleware"
	"github.com/mmynk/utang/internal/service"
)

// Options configures the HTTP surface.
type Options struct {
	// CookieName is the name of the session cookie.
	CookieName string

	// SecureCookie marks the session cookie Secure.
	SecureCookie bool

	// StaticPath, when set, is served for every unmatched GET.
	StaticPath string

	// CORSOrigins enables CORS for the listed origins.
	CORSOrigins []string
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the HTTP endpoints.
type Handler struct {
	auth     *service.AuthService
	settings *service.SettingsService
	ledger   *service.LedgerService
	health   Pinger
	metrics  *middleware.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	opts     Options
	table    map[string]action
}

// NewHandler creates a Handler.
func NewHandler(
	auth *service.AuthService,
	settings *service.SettingsService,
	ledger *service.LedgerService,
	health Pinger,
	logger *slog.Logger,
	opts Options,
) *Handler {
	h := &Handler{
		auth:     auth,
		settings: settings,
		ledger:   ledger,
		health:   health,
		logger:   logger,
		opts:     opts,
	}
	h.table = h.actions()
	return h
}

// WithMetrics enables request metrics and the /metrics endpoint.
func (h *Handler) WithMetrics(metrics *middleware.Metrics, gatherer prometheus.Gatherer) *Handler {
	h.metrics = metrics
	h.gatherer = gatherer
	return h
}

// Router builds the gin engine.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	if h.metrics != nil {
		r.Use(h.metrics.Middleware())
	}

	if len(h.opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     h.opts.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	withSession := middleware.LoadSession(h.auth, h.opts.CookieName)
	for _, path := range []string{"/api", "/api.php"} {
		r.GET(path, withSession, h.handleAction)
		r.POST(path, withSession, h.handleAction)
	}

	r.GET("/export.xlsx", middleware.RequireSession(h.auth, h.opts.CookieName), h.exportLedger)
	r.GET("/healthz", h.healthz)

	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}

	if h.opts.StaticPath != "" {
		r.NoRoute(h.serveStatic)
	}

	return r
}

func (h *Handler) exportLedger(c *gin.Context) {
	ledger, err := h.ledger.Ledger(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load ledger for export", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to export ledger."})
		return
	}

	var buf bytes.Buffer
	if err := export.WriteLedger(&buf, ledger); err != nil {
		h.logger.Error("Failed to render export", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to export ledger."})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="utang.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *Handler) healthz(c *gin.Context) {
	if err := h.health.Ping(c.Request.Context()); err != nil {
		h.logger.Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// serveStatic serves files from the static directory, falling back to
// index.html for unknown paths.
func (h *Handler) serveStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusNotFound)
		return
	}

	urlPath := c.Request.URL.Path
	if urlPath == "/" {
		urlPath = "/index.html"
	}

	filePath := filepath.Join(h.opts.StaticPath, filepath.Clean("/"+urlPath))
	if info, err := os.Stat(filePath); err != nil || info.IsDir() {
		filePath = filepath.Join(h.opts.StaticPath, "index.html")
	}

	c.File(filePath)
}
