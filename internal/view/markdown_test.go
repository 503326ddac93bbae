package view

import (
	"strings"
	"testing"
	"time"

	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownReport(t *testing.T) {
	prices := &models.PriceSnapshot{Prices: models.PriceTable{
		"1": {Sell: decimal.NewFromInt(1000000), Buy: decimal.NewFromInt(900000)},
	}}
	portfolio := &models.PortfolioSnapshot{
		Summary: models.Summary{TotalProfitLoss: decimal.NewFromInt(-50000)},
		Holdings: []models.Holding{{
			ID: "h1", Weight: 1, Notes: "a|b", PurchasePrice: decimal.NewFromInt(950000),
		}},
		FetchedAt: time.Now(),
	}

	md := MarkdownReport(prices, portfolio)

	assert.Contains(t, md, "# Gold Portfolio Report")
	assert.Contains(t, md, "| 1 gr | Rp 1.000.000 | Rp 900.000 |")
	assert.Contains(t, md, "-Rp 50.000")
	assert.Contains(t, md, `a\|b`)
	assert.Contains(t, md, "_No transactions yet_")
}

func TestMarkdownReport_PortfolioUnavailable(t *testing.T) {
	md := MarkdownReport(nil, nil)

	assert.Contains(t, md, "_No prices available_")
	assert.Contains(t, md, "_Portfolio unavailable_")
}

func TestMarkdownToHTML(t *testing.T) {
	html, err := MarkdownToHTML("## Holdings\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<script>alert(1)</script>\n")
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, "<table>")
	assert.False(t, strings.Contains(out, "<script>"))
}

func TestMarkdownPriceHistory(t *testing.T) {
	var b strings.Builder
	MarkdownPriceHistory(&b, 7, []models.PricePoint{{SellPrice: decimal.NewFromInt(1041000), BuyPrice: decimal.NewFromInt(905000), RecordedAt: "2026-10-19 09:00"}})

	assert.Contains(t, b.String(), "(7 days)")
	assert.Contains(t, b.String(), "| 2026-10-19 09:00 | Rp 1.041.000 | Rp 905.000 |")
}
