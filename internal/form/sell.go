package form

import (
	"context"
	"fmt"

	"github.com/atharvakonge/gold-tracker/internal/models"
)

// HoldingSeller disposes of a holding on the backend
type HoldingSeller interface {
	SellHolding(ctx context.Context, id string, req models.SellRequest) (models.APIResponse, error)
}

// SellForm is the state of the sell modal
type SellForm struct {
	ID          string
	SellPrice   string
	Description string
}

// OpenSell pre-fills the sell price with the holding's current buyback value.
// ok is false for unknown ids.
func OpenSell(lookup HoldingLookup, id string) (SellForm, bool) {
	h, ok := lookup.FindHolding(id)
	if !ok {
		return SellForm{}, false
	}
	return SellForm{
		ID:          h.ID,
		SellPrice:   h.CurrentBuy.Round(0).String(),
		Description: Describe(h),
	}, true
}

// Describe renders a holding as "5 gram (Antam)"
func Describe(h models.Holding) string {
	desc := fmt.Sprintf("%s gram", models.WeightKey(h.Weight))
	if h.Notes != "" {
		desc += " (" + h.Notes + ")"
	}
	return desc
}

// Payload validates the sell price
func (f SellForm) Payload() (models.SellRequest, error) {
	price, err := ParseAmount(f.SellPrice)
	if err != nil {
		return models.SellRequest{}, ErrInvalidPrice
	}
	return models.SellRequest{SellPrice: price.InexactFloat64()}, nil
}

// Submit issues the sell request
func (f SellForm) Submit(ctx context.Context, s HoldingSeller) (models.APIResponse, error) {
	if f.ID == "" {
		return models.APIResponse{}, ErrMissingID
	}
	req, err := f.Payload()
	if err != nil {
		return models.APIResponse{}, err
	}
	return s.SellHolding(ctx, f.ID, req)
}

// Remove deletes the holding without recording a sale. The backend logs a
// DELETE transaction when the sell price is zero.
func (f SellForm) Remove(ctx context.Context, s HoldingSeller) (models.APIResponse, error) {
	if f.ID == "" {
		return models.APIResponse{}, ErrMissingID
	}
	return s.SellHolding(ctx, f.ID, models.SellRequest{SellPrice: 0})
}
