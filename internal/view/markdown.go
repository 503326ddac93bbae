package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var reportMarkdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// MarkdownPrices writes the price table, ascending by weight
func MarkdownPrices(w io.Writer, snap *models.PriceSnapshot) {
	fmt.Fprintln(w, "## Gold Prices")
	fmt.Fprintln(w)
	if snap == nil || len(snap.Prices) == 0 {
		fmt.Fprintln(w, "_No prices available_")
		return
	}
	if snap.LastUpdate != "" {
		fmt.Fprintf(w, "Last update: %s\n\n", snap.LastUpdate)
	}
	fmt.Fprintln(w, "| Weight | Sell | Buyback | Spread |")
	fmt.Fprintln(w, "|---:|---:|---:|---:|")
	for _, c := range PriceCards(snap.Prices) {
		fmt.Fprintf(w, "| %s | %s | %s | %s |\n", c.Weight, c.Sell, c.Buy, c.Spread)
	}
}

// MarkdownSummary writes the portfolio totals
func MarkdownSummary(w io.Writer, s models.Summary) {
	v := NewSummaryView(s)
	fmt.Fprintln(w, "## Portfolio")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Current value: **%s**\n", v.CurrentValue)
	fmt.Fprintf(w, "- Total weight: %s\n", v.Weight)
	fmt.Fprintf(w, "- Total cost: %s\n", v.Cost)
	fmt.Fprintf(w, "- Profit/Loss: **%s** (%s)\n", v.ProfitLoss.Text, v.ProfitLossPct.Text)
}

// MarkdownHoldings writes one row per holding, or the empty state
func MarkdownHoldings(w io.Writer, holdings []models.Holding) {
	fmt.Fprintln(w, "## Holdings")
	fmt.Fprintln(w)
	if len(holdings) == 0 {
		fmt.Fprintln(w, "_No holdings yet. Add your first gold purchase._")
		return
	}
	fmt.Fprintln(w, "| ID | Weight | Date | Cost | Current | Profit/Loss | Notes |")
	fmt.Fprintln(w, "|---|---:|---|---:|---:|---:|---|")
	for _, c := range HoldingCards(holdings) {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s (%s) | %s |\n",
			cell(c.ID), c.Weight, cell(c.Date), c.Cost, c.Current, c.ProfitLoss.Text, c.ProfitLossPct.Text, cell(c.Notes))
	}
}

// MarkdownHistory writes transactions newest first
func MarkdownHistory(w io.Writer, txs []models.Transaction) {
	fmt.Fprintln(w, "## Transaction History")
	fmt.Fprintln(w)
	if len(txs) == 0 {
		fmt.Fprintln(w, "_No transactions yet_")
		return
	}
	fmt.Fprintln(w, "| Type | Weight | Price | Date |")
	fmt.Fprintln(w, "|---|---:|---:|---|")
	for _, r := range HistoryRows(txs) {
		fmt.Fprintf(w, "| %s | %s | %s | %s |\n", r.Type, r.Weight, r.Price, cell(r.Date))
	}
}

// MarkdownPriceHistory writes the 1 gram price series
func MarkdownPriceHistory(w io.Writer, days int, points []models.PricePoint) {
	fmt.Fprintf(w, "## 1 gram price history (%d days)\n\n", days)
	if len(points) == 0 {
		fmt.Fprintln(w, "_No price history recorded_")
		return
	}
	fmt.Fprintln(w, "| Recorded | Sell | Buyback |")
	fmt.Fprintln(w, "|---|---:|---:|")
	for _, r := range PriceHistoryRows(points) {
		fmt.Fprintf(w, "| %s | %s | %s |\n", cell(r.RecordedAt), r.Sell, r.Buy)
	}
}

// MarkdownReport renders prices and portfolio as one document
func MarkdownReport(prices *models.PriceSnapshot, portfolio *models.PortfolioSnapshot) string {
	var b strings.Builder
	fmt.Fprintln(&b, "# Gold Portfolio Report")
	fmt.Fprintln(&b)
	MarkdownPrices(&b, prices)
	fmt.Fprintln(&b)
	if portfolio == nil {
		fmt.Fprintln(&b, "_Portfolio unavailable_")
		return b.String()
	}
	MarkdownSummary(&b, portfolio.Summary)
	fmt.Fprintln(&b)
	MarkdownHoldings(&b, portfolio.Holdings)
	fmt.Fprintln(&b)
	MarkdownHistory(&b, portfolio.Transactions)
	return b.String()
}

// MarkdownToHTML converts a markdown document for the printable report.
// Raw HTML in the source is dropped.
func MarkdownToHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := reportMarkdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to convert report: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// cell keeps user text from breaking a table row
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
