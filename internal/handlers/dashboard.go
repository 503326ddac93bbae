package handlers

import (
	"net/http"
	"strings"

	"github.com/atharvakonge/gold-tracker/internal/form"
	"github.com/atharvakonge/gold-tracker/internal/view"
	"github.com/gin-gonic/gin"
)

// Index handles GET /: refetch prices and portfolio, then render the page with
// the modal named by ?modal=add|edit|sell
func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	h.refreshPrices(ctx)
	h.refreshPortfolio(ctx)

	p := h.page()
	switch c.Query("modal") {
	case "add":
		f := form.OpenAdd(h.now())
		h.applyFormQuery(c, &f)
		p.HoldingForm = f
	case "edit":
		// unknown ids leave the page without a modal
		if f, ok := form.OpenEdit(h.cache, c.Query("id")); ok {
			h.applyFormQuery(c, &f)
			p.HoldingForm = f
		}
	case "sell":
		if f, ok := form.OpenSell(h.cache, c.Query("id")); ok {
			p.SellForm = &f
		}
	}

	// toasts pushed by the fetches above
	p.WithToasts(h.notes.Active(), h.notes.TTL())
	h.render(c, http.StatusOK, "page", p)
}

// applyFormQuery replays a weight change made inside an open modal.
// ?preset= is a weight button, ?suggest= re-prices the typed weight, and a bare
// ?weight= (e.g. a link) selects that weight on the freshly opened form.
func (h *Handler) applyFormQuery(c *gin.Context, f *form.HoldingForm) {
	preset, hasPreset := c.GetQuery("preset")
	_, hasSuggest := c.GetQuery("suggest")

	if hasPreset || hasSuggest {
		// the modal round-trips its current values
		f.PurchasePrice = c.Query("purchase_price")
		f.PurchaseDate = c.DefaultQuery("purchase_date", f.PurchaseDate)
		f.Notes = c.Query("notes")
	}

	switch {
	case hasPreset:
		f.SetWeight(preset, h.cache.PriceTable())
	case hasSuggest:
		f.SetWeight(c.Query("weight"), h.cache.PriceTable())
	default:
		if w := strings.TrimSpace(c.Query("weight")); w != "" {
			f.SetWeight(w, h.cache.PriceTable())
		}
	}
}

// PricesFragment handles GET /ui/prices
func (h *Handler) PricesFragment(c *gin.Context) {
	snap := h.refreshPrices(c.Request.Context())
	h.render(c, http.StatusOK, "prices", new(view.Page).WithPrices(snap))
}

// PortfolioFragment handles GET /ui/portfolio: summary, holdings and history
func (h *Handler) PortfolioFragment(c *gin.Context) {
	snap := h.refreshPortfolio(c.Request.Context())
	p := new(view.Page).WithPortfolio(snap)

	var b strings.Builder
	for _, name := range []string{"summary", "holdings", "history"} {
		if err := h.view.Render(&b, name, p); err != nil {
			h.log.Error().Err(err).Str("template", name).Msg("render failed")
			c.String(http.StatusInternalServerError, "render failed")
			return
		}
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}

// ToastsFragment handles GET /ui/toasts
func (h *Handler) ToastsFragment(c *gin.Context) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"toasts": h.notes.Active()})
		return
	}
	h.render(c, http.StatusOK, "toasts", new(view.Page).WithToasts(h.notes.Active(), h.notes.TTL()))
}
