package models

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// PriceQuote is the current price of one gold denomination
type PriceQuote struct {
	Weight    float64         `json:"weight"`
	Sell      decimal.Decimal `json:"sell"`
	Buy       decimal.Decimal `json:"buy"` // buyback price
	SpreadPct float64         `json:"spread_pct"`
}

// PriceTable maps a weight key ("1", "0.5", or the backend's "1.0" form) to its quote
type PriceTable map[string]PriceQuote

// PricesResponse - what the backend sends for GET /api/prices
type PricesResponse struct {
	Success    bool       `json:"success"`
	LastUpdate string     `json:"last_update"`
	Timezone   string     `json:"timezone,omitempty"`
	Data       PriceTable `json:"data"`
	Error      string     `json:"error,omitempty"`
}

// WeightKey stringifies a weight the way price keys are written ("1", "0.5").
func WeightKey(weight float64) string {
	return strconv.FormatFloat(weight, 'f', -1, 64)
}

// weightKeys returns every key form a weight may be stored under.
func weightKeys(weight float64) []string {
	short := WeightKey(weight)
	long := strconv.FormatFloat(weight, 'f', 1, 64)
	if long == short {
		return []string{short}
	}
	if weight == float64(int64(weight)) {
		return []string{short, long}
	}
	return []string{short}
}

// Lookup finds the quote for an exact weight.
func (t PriceTable) Lookup(weight float64) (PriceQuote, bool) {
	for _, key := range weightKeys(weight) {
		if q, ok := t[key]; ok {
			return q, true
		}
	}
	return PriceQuote{}, false
}

// Suggest returns the sell price for weight: the exact denomination when listed,
// otherwise the 1 gram sell price scaled linearly.
func (t PriceTable) Suggest(weight float64) (decimal.Decimal, bool) {
	if weight <= 0 {
		return decimal.Zero, false
	}
	if q, ok := t.Lookup(weight); ok {
		return q.Sell, true
	}
	perGram, ok := t.Lookup(1)
	if !ok {
		return decimal.Zero, false
	}
	return perGram.Sell.Mul(decimal.NewFromFloat(weight)), true
}

// Sorted returns the quotes ordered by ascending weight.
func (t PriceTable) Sorted() []PriceQuote {
	quotes := make([]PriceQuote, 0, len(t))
	for key, q := range t {
		if w, err := strconv.ParseFloat(key, 64); err == nil {
			q.Weight = w
		}
		quotes = append(quotes, q)
	}
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Weight < quotes[j].Weight
	})
	return quotes
}

// PricePoint is one entry of the recorded 1 gram price series
type PricePoint struct {
	Weight     float64         `json:"weight"`
	SellPrice  decimal.Decimal `json:"sell_price"`
	BuyPrice   decimal.Decimal `json:"buy_price"`
	RecordedAt string          `json:"recorded_at"`
}

// PriceHistoryResponse - what the backend sends for GET /api/price-history
type PriceHistoryResponse struct {
	Success bool         `json:"success"`
	Days    int          `json:"days"`
	Count   int          `json:"count"`
	Data    []PricePoint `json:"data"`
	Error   string       `json:"error,omitempty"`
}
