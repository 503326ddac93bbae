package models

import (
	"github.com/shopspring/decimal"
)

// Transaction types recorded by the backend
const (
	TransactionBuy    = "BUY"
	TransactionSell   = "SELL"
	TransactionDelete = "DELETE"
)

// Holding represents a quantity of gold still owned, with server computed valuation
type Holding struct {
	ID            string          `json:"id"`
	Weight        float64         `json:"weight"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  string          `json:"purchase_date"`
	Notes         string          `json:"notes"`
	CreatedAt     string          `json:"created_at,omitempty"`
	CurrentSell   decimal.Decimal `json:"current_sell"`
	CurrentBuy    decimal.Decimal `json:"current_buy"`
	ProfitLoss    decimal.Decimal `json:"profit_loss"`
	ProfitLossPct float64         `json:"profit_loss_pct"`
}

// Transaction represents a past buy or sell event
type Transaction struct {
	ID        int64           `json:"id,omitempty"`
	Type      string          `json:"type"` // "BUY", "SELL" or "DELETE"
	HoldingID string          `json:"holding_id,omitempty"`
	Weight    float64         `json:"weight"`
	Price     decimal.Decimal `json:"price"`
	Date      string          `json:"date"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// Summary aggregates the valuation of every holding
type Summary struct {
	TotalCurrentValue  decimal.Decimal `json:"total_current_value"`
	TotalWeight        float64         `json:"total_weight"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalProfitLoss    decimal.Decimal `json:"total_profit_loss"`
	TotalProfitLossPct float64         `json:"total_profit_loss_pct"`
	HoldingsCount      int             `json:"holdings_count"`
}

// PortfolioResponse - what the backend sends for GET /api/portfolio/summary
type PortfolioResponse struct {
	Success      bool          `json:"success"`
	PricesUpdate string        `json:"prices_update,omitempty"`
	Summary      Summary       `json:"summary"`
	Holdings     []Holding     `json:"holdings"`
	Transactions []Transaction `json:"transactions"`
	Error        string        `json:"error,omitempty"`
}

// HoldingRequest - what we send to create or update a holding
type HoldingRequest struct {
	Weight        float64 `json:"weight"`
	PurchasePrice float64 `json:"purchase_price"`
	PurchaseDate  string  `json:"purchase_date"`
	Notes         string  `json:"notes"`
}

// SellRequest - body of the DELETE call that turns a holding into a SELL transaction
type SellRequest struct {
	SellPrice float64 `json:"sell_price"`
}

// APIResponse is the envelope of every mutating backend call
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ImportResponse - what the backend sends for POST /api/portfolio/import
type ImportResponse struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
	Error    string   `json:"error,omitempty"`
}
