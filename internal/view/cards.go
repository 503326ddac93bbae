package view

import (
	"sort"

	"github.com/atharvakonge/gold-tracker/internal/models"
)

// PriceCard is one denomination of the price panel
type PriceCard struct {
	Weight string `json:"weight"`
	Sell   string `json:"sell"`
	Buy    string `json:"buy"`
	Spread string `json:"spread"`
}

// PriceCards renders the table ascending by weight
func PriceCards(table models.PriceTable) []PriceCard {
	sorted := table.Sorted()
	cards := make([]PriceCard, 0, len(sorted))
	for _, q := range sorted {
		cards = append(cards, PriceCard{
			Weight: Weight(q.Weight),
			Sell:   Rupiah(q.Sell),
			Buy:    Rupiah(q.Buy),
			Spread: Percent(q.SpreadPct),
		})
	}
	return cards
}

// SummaryView holds the formatted portfolio totals
type SummaryView struct {
	CurrentValue  string
	Weight        string
	Cost          string
	ProfitLoss    Signed
	ProfitLossPct Signed
	Count         int
}

// NewSummaryView formats the aggregate summary
func NewSummaryView(s models.Summary) SummaryView {
	return SummaryView{
		CurrentValue:  Rupiah(s.TotalCurrentValue),
		Weight:        WeightLong(s.TotalWeight),
		Cost:          Rupiah(s.TotalCost),
		ProfitLoss:    SignedRupiah(s.TotalProfitLoss),
		ProfitLossPct: SignedPercent(s.TotalProfitLossPct),
		Count:         s.HoldingsCount,
	}
}

// HoldingCard is one holding with its Edit and Sell actions keyed by ID
type HoldingCard struct {
	ID            string
	Weight        string
	Notes         string
	Date          string
	Cost          string
	Current       string
	ProfitLoss    Signed
	ProfitLossPct Signed
}

// HoldingCards formats the holdings in the order received
func HoldingCards(holdings []models.Holding) []HoldingCard {
	cards := make([]HoldingCard, 0, len(holdings))
	for _, h := range holdings {
		cards = append(cards, HoldingCard{
			ID:            h.ID,
			Weight:        WeightLong(h.Weight),
			Notes:         h.Notes,
			Date:          h.PurchaseDate,
			Cost:          Rupiah(h.PurchasePrice),
			Current:       Rupiah(h.CurrentBuy),
			ProfitLoss:    SignedRupiah(h.ProfitLoss),
			ProfitLossPct: SignedPercent(h.ProfitLossPct),
		})
	}
	return cards
}

// HistoryRow is one transaction line
type HistoryRow struct {
	Type   string
	Class  string // "buy", "sell" or "delete"
	Weight string
	Price  string
	Date   string
}

// HistoryRows lists transactions newest first. When every transaction carries
// an id the ids decide the order, whatever order the backend sent; otherwise
// txs is taken to be in creation order and reversed.
func HistoryRows(txs []models.Transaction) []HistoryRow {
	ordered := make([]models.Transaction, len(txs))
	if hasIDs(txs) {
		copy(ordered, txs)
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID > ordered[j].ID })
	} else {
		for i, tx := range txs {
			ordered[len(txs)-1-i] = tx
		}
	}

	rows := make([]HistoryRow, 0, len(ordered))
	for _, tx := range ordered {
		rows = append(rows, HistoryRow{
			Type:   tx.Type,
			Class:  txClass(tx.Type),
			Weight: Weight(tx.Weight),
			Price:  Rupiah(tx.Price),
			Date:   tx.Date,
		})
	}
	return rows
}

func hasIDs(txs []models.Transaction) bool {
	if len(txs) == 0 {
		return false
	}
	for _, tx := range txs {
		if tx.ID == 0 {
			return false
		}
	}
	return true
}

func txClass(kind string) string {
	switch kind {
	case models.TransactionSell:
		return "sell"
	case models.TransactionDelete:
		return "delete"
	default:
		return "buy"
	}
}

// PriceHistoryRow is one point of the 1 gram price series
type PriceHistoryRow struct {
	RecordedAt string
	Sell       string
	Buy        string
}

// PriceHistoryRows formats the series in the order received
func PriceHistoryRows(points []models.PricePoint) []PriceHistoryRow {
	rows := make([]PriceHistoryRow, 0, len(points))
	for _, p := range points {
		rows = append(rows, PriceHistoryRow{
			RecordedAt: p.RecordedAt,
			Sell:       Rupiah(p.SellPrice),
			Buy:        Rupiah(p.BuyPrice),
		})
	}
	return rows
}
