package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	assert.Equal(t, "Rp 1.500.000", Rupiah(decimal.NewFromInt(1500000)))
	assert.Equal(t, Rupiah(decimal.NewFromInt(1500000)), Rupiah(decimal.NewFromFloat(1500000.0)))
	assert.Equal(t, Rupiah(decimal.NewFromInt(1500000)), RupiahFloat(1500000.0))
	assert.Equal(t, "Rp 0", Rupiah(decimal.Zero))
	assert.Equal(t, "Rp 999", Rupiah(decimal.NewFromInt(999)))
	assert.Equal(t, "-Rp 50.000", Rupiah(decimal.NewFromInt(-50000)))
}

func TestRupiah_DropsFraction(t *testing.T) {
	assert.Equal(t, "Rp 1.041.001", Rupiah(decimal.RequireFromString("1041000.5")))
	assert.Equal(t, "Rp 1.041.000", Rupiah(decimal.RequireFromString("1041000.49")))
}

func TestWeight(t *testing.T) {
	assert.Equal(t, "5 gr", Weight(5))
	assert.Equal(t, "0.5 gr", Weight(0.5))
	assert.Equal(t, "2.5 gram", WeightLong(2.5))
}

func TestSignedRupiah(t *testing.T) {
	loss := SignedRupiah(decimal.NewFromInt(-50000))
	assert.Equal(t, ClassNegative, loss.Class)
	assert.Equal(t, "-Rp 50.000", loss.Text)
	assert.True(t, loss.Negative())

	zero := SignedRupiah(decimal.Zero)
	assert.Equal(t, ClassPositive, zero.Class)
	assert.Equal(t, "+Rp 0", zero.Text)

	gain := SignedRupiah(decimal.NewFromInt(125000))
	assert.Equal(t, ClassPositive, gain.Class)
	assert.Equal(t, "+Rp 125.000", gain.Text)
}

func TestSignedPercent(t *testing.T) {
	assert.Equal(t, Signed{Class: ClassNegative, Text: "-2.56%"}, SignedPercent(-2.56))
	assert.Equal(t, Signed{Class: ClassPositive, Text: "+0.00%"}, SignedPercent(0))
	assert.Equal(t, Signed{Class: ClassPositive, Text: "+0.00%"}, SignedPercent(-0.001))
	assert.Equal(t, Signed{Class: ClassPositive, Text: "+12.50%"}, SignedPercent(12.5))
}
