// Package view formats and renders the tracker screens.
package view

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// Sign classes used by the stylesheet
const (
	ClassPositive = "positive"
	ClassNegative = "negative"
)

var rupiah = money.NewFormatter(0, ",", ".", rupiahGrapheme(), "$ 1")

func rupiahGrapheme() string {
	if cur := money.GetCurrency("IDR"); cur != nil && cur.Grapheme != "" {
		return cur.Grapheme
	}
	return "Rp"
}

// Rupiah formats an amount as Indonesian Rupiah without fraction digits: "Rp 1.500.000".
// Halves round away from zero.
func Rupiah(amount decimal.Decimal) string {
	return rupiah.Format(amount.Round(0).IntPart())
}

// RupiahFloat is Rupiah for float inputs
func RupiahFloat(amount float64) string {
	return Rupiah(decimal.NewFromFloat(amount))
}

// Weight renders grams with the short suffix: "5 gr"
func Weight(grams float64) string {
	return models.WeightKey(grams) + " gr"
}

// WeightLong renders grams with the long suffix: "5 gram"
func WeightLong(grams float64) string {
	return models.WeightKey(grams) + " gram"
}

// Percent renders a percentage with two decimals
func Percent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// Signed is a value rendered with gain/loss styling
type Signed struct {
	Class string
	Text  string
}

// Negative reports whether the value renders as a loss
func (s Signed) Negative() bool { return s.Class == ClassNegative }

// SignedRupiah styles an amount: zero and gains are positive with a leading "+"
func SignedRupiah(amount decimal.Decimal) Signed {
	if amount.Round(0).IsNegative() {
		return Signed{Class: ClassNegative, Text: Rupiah(amount)}
	}
	return Signed{Class: ClassPositive, Text: "+" + Rupiah(amount)}
}

// SignedPercent styles a percentage the same way
func SignedPercent(pct float64) Signed {
	rounded := math.Round(pct*100) / 100
	if rounded < 0 {
		return Signed{Class: ClassNegative, Text: Percent(rounded)}
	}
	return Signed{Class: ClassPositive, Text: "+" + Percent(math.Abs(rounded))}
}
