// Package form holds the add/edit and sell modal state machines.
package form

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// DateLayout is the purchase date format exchanged with the backend
const DateLayout = "2006-01-02"

// Mode of the holding modal
type Mode int

const (
	Closed Mode = iota
	Add
	Edit
)

func (m Mode) String() string {
	switch m {
	case Add:
		return "add"
	case Edit:
		return "edit"
	default:
		return "closed"
	}
}

// PresetWeights are the weight buttons offered by the holding modal, in grams
var PresetWeights = []float64{0.5, 1, 2, 3, 5, 10, 25, 50, 100}

var (
	ErrInvalidWeight = errors.New("weight must be a positive number of grams")
	ErrInvalidPrice  = errors.New("purchase price must be a positive amount")
	ErrInvalidDate   = errors.New("purchase date must be YYYY-MM-DD")
	ErrMissingID     = errors.New("holding id is required")
)

// HoldingLookup finds a holding in the last fetched portfolio
type HoldingLookup interface {
	FindHolding(id string) (models.Holding, bool)
}

// HoldingWriter creates and updates holdings on the backend
type HoldingWriter interface {
	AddHolding(ctx context.Context, req models.HoldingRequest) (models.APIResponse, error)
	UpdateHolding(ctx context.Context, id string, req models.HoldingRequest) (models.APIResponse, error)
}

// HoldingForm is the state of the shared add/edit modal
type HoldingForm struct {
	Mode          Mode
	ID            string
	Weight        string
	Preset        string // selected preset key, empty when the weight was typed
	PurchasePrice string
	PurchaseDate  string
	Notes         string
	Suggestion    decimal.Decimal
	HasSuggestion bool
}

// Preset is one weight button
type Preset struct {
	Value    string
	Selected bool
}

// OpenAdd returns a cleared form dated today
func OpenAdd(today time.Time) HoldingForm {
	return HoldingForm{
		Mode:         Add,
		PurchaseDate: today.Format(DateLayout),
	}
}

// OpenEdit pre-fills the form from the cached holding. ok is false for unknown ids.
func OpenEdit(lookup HoldingLookup, id string) (HoldingForm, bool) {
	h, ok := lookup.FindHolding(id)
	if !ok {
		return HoldingForm{}, false
	}

	f := HoldingForm{
		Mode:          Edit,
		ID:            h.ID,
		Weight:        models.WeightKey(h.Weight),
		PurchasePrice: h.PurchasePrice.String(),
		PurchaseDate:  h.PurchaseDate,
		Notes:         h.Notes,
	}
	f.Preset = presetKey(f.Weight)
	return f, true
}

// Open reports whether the modal is visible
func (f HoldingForm) Open() bool { return f.Mode != Closed }

// Title of the modal
func (f HoldingForm) Title() string {
	if f.Mode == Edit {
		return "Edit Holding"
	}
	return "Add Holding"
}

// SetWeight records a typed or preset weight and refreshes the price suggestion.
// A suggestion, when available, replaces the purchase price.
func (f *HoldingForm) SetWeight(raw string, prices models.PriceTable) {
	f.Weight = strings.TrimSpace(raw)
	f.Preset = presetKey(f.Weight)
	f.Suggestion, f.HasSuggestion = decimal.Zero, false

	w, err := ParseWeight(f.Weight)
	if err != nil {
		return
	}
	if s, ok := prices.Suggest(w); ok {
		f.Suggestion, f.HasSuggestion = s, true
		f.PurchasePrice = s.Round(0).String()
	}
}

// Presets lists the weight buttons with at most one selected
func (f HoldingForm) Presets() []Preset {
	out := make([]Preset, len(PresetWeights))
	for i, w := range PresetWeights {
		key := models.WeightKey(w)
		out[i] = Preset{Value: key, Selected: key == f.Preset}
	}
	return out
}

// Payload validates the form and builds the backend request
func (f HoldingForm) Payload() (models.HoldingRequest, error) {
	w, err := ParseWeight(f.Weight)
	if err != nil {
		return models.HoldingRequest{}, err
	}
	price, err := ParseAmount(f.PurchasePrice)
	if err != nil {
		return models.HoldingRequest{}, ErrInvalidPrice
	}
	date := strings.TrimSpace(f.PurchaseDate)
	if _, err := time.Parse(DateLayout, date); err != nil {
		return models.HoldingRequest{}, ErrInvalidDate
	}

	return models.HoldingRequest{
		Weight:        w,
		PurchasePrice: price.InexactFloat64(),
		PurchaseDate:  date,
		Notes:         strings.TrimSpace(f.Notes),
	}, nil
}

// Submit creates the holding in Add mode and updates it in Edit mode
func (f HoldingForm) Submit(ctx context.Context, w HoldingWriter) (models.APIResponse, error) {
	req, err := f.Payload()
	if err != nil {
		return models.APIResponse{}, err
	}

	switch f.Mode {
	case Add:
		return w.AddHolding(ctx, req)
	case Edit:
		if f.ID == "" {
			return models.APIResponse{}, ErrMissingID
		}
		return w.UpdateHolding(ctx, f.ID, req)
	default:
		return models.APIResponse{}, fmt.Errorf("cannot submit a %s form", f.Mode)
	}
}

// ParseWeight parses grams; "5", "5g", "5 gr" and "0,5" are accepted
func ParseWeight(raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, suffix := range []string{"gram", "gr", "g"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}
	s = strings.Replace(s, ",", ".", 1)

	w, err := strconv.ParseFloat(s, 64)
	if err != nil || w <= 0 {
		return 0, ErrInvalidWeight
	}
	return w, nil
}

var (
	// "1.500.000" or "1.500.000,50"
	dotGrouped = regexp.MustCompile(`^\d{1,3}(\.\d{3})+(,\d+)?$`)
	// "1,500,000" or "1,500,000.50"
	commaGrouped = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// ParseAmount parses a positive rupiah amount, tolerating an "Rp" prefix and spaces.
// Digit groups may be separated by dots ("1.500.000", decimal comma) or commas
// ("1,500,000", decimal point); a lone dot or comma is a decimal separator.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "Rp")
	s = strings.ReplaceAll(s, " ", "")

	switch {
	case dotGrouped.MatchString(s):
		s = strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	case commaGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") == 1 && !strings.Contains(s, "."):
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount %s is not positive", d)
	}
	return d, nil
}

func presetKey(weight string) string {
	w, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
	if err != nil {
		return ""
	}
	for _, p := range PresetWeights {
		if p == w {
			return models.WeightKey(p)
		}
	}
	return ""
}
