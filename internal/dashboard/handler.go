package dashboard

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "nlp-dashboard/internal/common/errors"
	"nlp-dashboard/internal/common/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Pinger is a dependency checked by /ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Title          string
	RequestTimeout time.Duration
}

type Handler struct {
	config  *Config
	service *Service
	checks  map[string]Pinger
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(cfg *Config, service *Service, checks map[string]Pinger, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		config:  cfg,
		service: service,
		checks:  checks,
		errors:  apperrors.NewErrorHandler(log),
		logger:  log,
	}
}

// NewRouter builds the gin engine with middleware and all routes registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(h.logger))
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))
	h.Register(r)
	return r
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/", h.page)
	r.GET("/api/articles/next", h.next)
	r.GET("/health", h.health)
	r.GET("/ready", h.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (h *Handler) page(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title": h.config.Title,
	})
}

func (h *Handler) next(c *gin.Context) {
	requestID := RequestIDFrom(c)

	ctx := c.Request.Context()
	if h.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.RequestTimeout)
		defer cancel()
	}

	view, err := h.service.Next(ctx)
	if err != nil {
		h.errors.HandleRequestError(c, requestID, err)
		return
	}

	view.RequestID = requestID
	c.JSON(http.StatusOK, view)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, dep := range h.checks {
		if err := dep.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			h.logger.Warn("readiness check failed", map[string]interface{}{
				"dependency": name,
				"error":      err.Error(),
			})
			continue
		}
		results[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	c.JSON(status, gin.H{
		"status": state,
		"checks": results,
		"time":   time.Now().Format(time.RFC3339),
	})
}
