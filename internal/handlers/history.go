package handlers

import (
	"net/http"
	"strconv"

	"github.com/atharvakonge/gold-tracker/internal/client"
	"github.com/atharvakonge/gold-tracker/internal/view"
	"github.com/gin-gonic/gin"
)

var historyWindows = []int{7, 30, 90, 365}

// PriceHistory handles GET /history?days=N (1..365, default 30)
func (h *Handler) PriceHistory(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil {
		days = 30
	}
	days = client.ClampDays(days)

	p := &view.Page{Days: days, DayOptions: historyWindows}
	status := http.StatusOK

	resp, err := h.backend.PriceHistory(c.Request.Context(), days)
	if err != nil {
		h.log.Warn().Err(err).Int("days", days).Msg("price history fetch failed")
		h.notes.Error(client.Message(err, msgHistoryFailed))
		status = http.StatusBadGateway
	} else {
		p.PriceHistory = view.PriceHistoryRows(resp.Data)
	}

	if wantsJSON(c) {
		if err != nil {
			c.JSON(status, gin.H{"success": false, "error": client.Message(err, msgHistoryFailed)})
			return
		}
		c.JSON(status, resp)
		return
	}
	p.WithToasts(h.notes.Active(), h.notes.TTL())
	h.render(c, status, "history-page", p)
}

// Report handles GET /report: the whole portfolio as a printable document.
// ?format=md returns the markdown source.
func (h *Handler) Report(c *gin.Context) {
	ctx := c.Request.Context()
	prices := h.refreshPrices(ctx)
	portfolio := h.refreshPortfolio(ctx)

	md := view.MarkdownReport(prices, portfolio)
	if c.Query("format") == "md" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
		return
	}

	body, err := view.MarkdownToHTML(md)
	if err != nil {
		h.log.Error().Err(err).Msg("report conversion failed")
		c.String(http.StatusInternalServerError, "report failed")
		return
	}
	h.render(c, http.StatusOK, "report-page", &view.Page{Body: body})
}
