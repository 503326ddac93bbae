package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/atharvakonge/gold-tracker/internal/client"
	"github.com/atharvakonge/gold-tracker/internal/db"
	"github.com/atharvakonge/gold-tracker/internal/form"
	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/atharvakonge/gold-tracker/internal/notify"
	"github.com/atharvakonge/gold-tracker/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Fallback messages shown when the backend gives no reason
const (
	msgPricesFailed    = "Failed to fetch gold prices"
	msgPortfolioFailed = "Failed to load portfolio"
	msgSaveFailed      = "Failed to save holding"
	msgSellFailed      = "Failed to sell holding"
	msgRemoveFailed    = "Failed to remove holding"
	msgImportFailed    = "Import failed"
	msgExportFailed    = "Export failed"
	msgHistoryFailed   = "Failed to load price history"
)

// Backend is the tracker API as seen by the web console
type Backend interface {
	Prices(ctx context.Context) (models.PricesResponse, error)
	Portfolio(ctx context.Context) (models.PortfolioResponse, error)
	form.HoldingWriter
	form.HoldingSeller
	ImportHoldings(ctx context.Context, filename string, file io.Reader) (models.ImportResponse, error)
	ExportHoldings(ctx context.Context, w io.Writer) (int64, error)
	PriceHistory(ctx context.Context, days int) (models.PriceHistoryResponse, error)
}

var _ Backend = (*client.Client)(nil)

// Handler serves the tracker screens and forwards user actions to the backend
type Handler struct {
	backend      Backend
	cache        *models.Cache
	notes        *notify.Notifier
	view         *view.Renderer
	imports      db.ImportLog
	log          zerolog.Logger
	pushInterval time.Duration
	now          func() time.Time
	importing    atomic.Bool
}

// Options tune a Handler; zero values get defaults
type Options struct {
	Notifier     *notify.Notifier
	Renderer     *view.Renderer
	ImportLog    db.ImportLog
	Logger       *zerolog.Logger
	PushInterval time.Duration
	Now          func() time.Time
}

// NewHandler creates the web controller over backend and cache
func NewHandler(backend Backend, cache *models.Cache, opts Options) *Handler {
	h := &Handler{
		backend:      backend,
		cache:        cache,
		notes:        opts.Notifier,
		view:         opts.Renderer,
		imports:      opts.ImportLog,
		log:          zerolog.Nop(),
		pushInterval: opts.PushInterval,
		now:          opts.Now,
	}
	if h.notes == nil {
		h.notes = notify.New(notify.DefaultTTL)
	}
	if h.view == nil {
		h.view = view.MustRenderer()
	}
	if h.imports == nil {
		h.imports = db.NopImportLog{}
	}
	if opts.Logger != nil {
		h.log = *opts.Logger
	}
	if h.pushInterval <= 0 {
		h.pushInterval = time.Minute
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Register mounts every route on r
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Index)
	r.GET("/ui/prices", h.PricesFragment)
	r.GET("/ui/portfolio", h.PortfolioFragment)
	r.GET("/ui/toasts", h.ToastsFragment)

	r.POST("/holdings", h.AddHolding)
	r.POST("/holdings/:id", h.UpdateHolding)
	r.PUT("/holdings/:id", h.UpdateHolding)
	r.POST("/holdings/:id/sell", h.SellHolding)
	r.DELETE("/holdings/:id", h.SellHolding)
	r.POST("/holdings/:id/remove", h.RemoveHolding)

	r.POST("/import", h.ImportHoldings)
	r.GET("/imports", h.ImportRuns)
	r.GET("/export", h.ExportHoldings)
	r.GET("/history", h.PriceHistory)
	r.GET("/report", h.Report)

	r.GET("/ws/prices", h.HandleWebSocket)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}

// refreshPrices fetches prices into the cache. On failure an error toast is
// pushed and the previous snapshot is returned unchanged.
func (h *Handler) refreshPrices(ctx context.Context) *models.PriceSnapshot {
	resp, err := h.backend.Prices(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("price fetch failed")
		h.notes.Error(client.Message(err, msgPricesFailed))
		return h.cache.Prices()
	}
	return h.cache.SetPrices(resp, h.now())
}

// refreshPortfolio is refreshPrices for the portfolio snapshot
func (h *Handler) refreshPortfolio(ctx context.Context) *models.PortfolioSnapshot {
	resp, err := h.backend.Portfolio(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("portfolio fetch failed")
		h.notes.Error(client.Message(err, msgPortfolioFailed))
		return h.cache.Portfolio()
	}
	return h.cache.SetPortfolio(resp, h.now())
}

// page builds a screen from the cached snapshots without fetching
func (h *Handler) page() *view.Page {
	p := &view.Page{Importing: h.importing.Load()}
	return p.WithPrices(h.cache.Prices()).
		WithPortfolio(h.cache.Portfolio()).
		WithToasts(h.notes.Active(), h.notes.TTL())
}

// Templates installs the embedded templates as r's HTML renderer.
// It must run before any handler renders a page.
func (h *Handler) Templates(r *gin.Engine) {
	r.SetHTMLTemplate(h.view.Template())
}

func (h *Handler) render(c *gin.Context, status int, name string, p *view.Page) {
	c.HTML(status, name, p)
	if err := c.Errors.Last(); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

// wantsJSON reports whether the caller asked for a JSON answer instead of a page
func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// succeed pushes a success toast and sends the browser back to the refreshed page
func (h *Handler) succeed(c *gin.Context, msg string, extra gin.H) {
	h.notes.Success(msg)
	if wantsJSON(c) {
		body := gin.H{"success": true, "message": msg}
		for k, v := range extra {
			body[k] = v
		}
		c.JSON(http.StatusOK, body)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// fail pushes an error toast and re-renders the current state, with p's modal open
func (h *Handler) fail(c *gin.Context, status int, msg string, p *view.Page) {
	h.notes.Error(msg)
	if wantsJSON(c) {
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}
	if p == nil {
		p = h.page()
	}
	p.WithToasts(h.notes.Active(), h.notes.TTL())
	h.render(c, status, "page", p)
}

// failureStatus maps a backend error onto the status of our own answer
func failureStatus(err error) int {
	switch {
	case client.IsNotFound(err):
		return http.StatusNotFound
	case isValidation(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func isValidation(err error) bool {
	for _, target := range []error{form.ErrInvalidWeight, form.ErrInvalidPrice, form.ErrInvalidDate, form.ErrMissingID} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// userMessage is client.Message that also surfaces form validation errors
func userMessage(err error, fallback string) string {
	if isValidation(err) {
		return err.Error()
	}
	return client.Message(err, fallback)
}
