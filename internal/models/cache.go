package models

import (
	"sync"
	"time"
)

// PriceSnapshot is the last successfully fetched price table
type PriceSnapshot struct {
	LastUpdate string
	Timezone   string
	Prices     PriceTable
	FetchedAt  time.Time
}

// PortfolioSnapshot is the last successfully fetched portfolio state
type PortfolioSnapshot struct {
	Summary      Summary
	Holdings     []Holding
	Transactions []Transaction
	FetchedAt    time.Time
}

// Cache holds the two process-wide snapshots the views render from.
// Each snapshot is replaced wholesale on a successful fetch and never mutated in place.
type Cache struct {
	mu        sync.RWMutex
	prices    *PriceSnapshot
	portfolio *PortfolioSnapshot
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{}
}

// SetPrices replaces the price snapshot
func (c *Cache) SetPrices(resp PricesResponse, at time.Time) *PriceSnapshot {
	snap := &PriceSnapshot{
		LastUpdate: resp.LastUpdate,
		Timezone:   resp.Timezone,
		Prices:     resp.Data,
		FetchedAt:  at,
	}
	if snap.Prices == nil {
		snap.Prices = PriceTable{}
	}

	c.mu.Lock()
	c.prices = snap
	c.mu.Unlock()
	return snap
}

// Prices returns the last price snapshot, or nil before the first fetch
func (c *Cache) Prices() *PriceSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.prices
}

// PriceTable returns the cached table, empty when nothing was fetched yet
func (c *Cache) PriceTable() PriceTable {
	if snap := c.Prices(); snap != nil {
		return snap.Prices
	}
	return PriceTable{}
}

// SetPortfolio replaces the portfolio snapshot
func (c *Cache) SetPortfolio(resp PortfolioResponse, at time.Time) *PortfolioSnapshot {
	snap := &PortfolioSnapshot{
		Summary:      resp.Summary,
		Holdings:     resp.Holdings,
		Transactions: resp.Transactions,
		FetchedAt:    at,
	}

	c.mu.Lock()
	c.portfolio = snap
	c.mu.Unlock()
	return snap
}

// Portfolio returns the last portfolio snapshot, or nil before the first fetch
func (c *Cache) Portfolio() *PortfolioSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.portfolio
}

// FindHolding looks a holding up by id in the cached portfolio
func (c *Cache) FindHolding(id string) (Holding, bool) {
	snap := c.Portfolio()
	if snap == nil || id == "" {
		return Holding{}, false
	}
	for _, h := range snap.Holdings {
		if h.ID == id {
			return h, true
		}
	}
	return Holding{}, false
}
