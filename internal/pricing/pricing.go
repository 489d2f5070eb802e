// Package pricing implements the deterministic variant price calculation.
// It is pure: callers load inputs, compute, and persist the result themselves.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
)

var hundred = decimal.NewFromInt(100)

// Inputs carries every value the price formula reads.
type Inputs struct {
	NetWeight         decimal.Decimal
	MetalRate         decimal.Decimal
	WastagePercentage decimal.Decimal
	MakingChargeType  enums.MakingChargeType
	MakingChargeValue decimal.Decimal
	StonePrice        decimal.Decimal
	GSTPercentage     decimal.Decimal
}

// Breakdown exposes each intermediate amount alongside the final price so
// callers can render an itemized quote.
type Breakdown struct {
	BaseAmount    decimal.Decimal `json:"base_amount"`
	WastageAmount decimal.Decimal `json:"wastage_amount"`
	MakingCharge  decimal.Decimal `json:"making_charge"`
	StonePrice    decimal.Decimal `json:"stone_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	FinalPrice    decimal.Decimal `json:"final_price"`
}

// Compute derives the unit price:
//
//	base     = netWeight * metalRate
//	wastage  = base * wastagePct / 100
//	making   = per_gram ? netWeight * value : value
//	subtotal = base + wastage + making + stonePrice
//	gst      = subtotal * gstPct / 100
//	final    = round(subtotal + gst, 2)
//
// Intermediate amounts stay unrounded; only the final price is rounded, half
// away from zero, to two places.
func Compute(in Inputs) (Breakdown, error) {
	if in.NetWeight.IsNegative() {
		return Breakdown{}, fmt.Errorf("net weight cannot be negative")
	}
	if in.MetalRate.IsNegative() {
		return Breakdown{}, fmt.Errorf("metal rate cannot be negative")
	}
	if in.WastagePercentage.IsNegative() {
		return Breakdown{}, fmt.Errorf("wastage percentage cannot be negative")
	}
	if in.MakingChargeValue.IsNegative() {
		return Breakdown{}, fmt.Errorf("making charge value cannot be negative")
	}
	if in.StonePrice.IsNegative() {
		return Breakdown{}, fmt.Errorf("stone price cannot be negative")
	}
	if in.GSTPercentage.IsNegative() {
		return Breakdown{}, fmt.Errorf("gst percentage cannot be negative")
	}
	if !in.MakingChargeType.IsValid() {
		return Breakdown{}, fmt.Errorf("invalid making charge type %q", in.MakingChargeType)
	}

	base := in.NetWeight.Mul(in.MetalRate)
	wastage := base.Mul(in.WastagePercentage).Div(hundred)

	making := in.MakingChargeValue
	if in.MakingChargeType == enums.MakingChargePerGram {
		making = in.NetWeight.Mul(in.MakingChargeValue)
	}

	subtotal := base.Add(wastage).Add(making).Add(in.StonePrice)
	gst := subtotal.Mul(in.GSTPercentage).Div(hundred)

	return Breakdown{
		BaseAmount:    base,
		WastageAmount: wastage,
		MakingCharge:  making,
		StonePrice:    in.StonePrice,
		Subtotal:      subtotal,
		GSTAmount:     gst,
		FinalPrice:    subtotal.Add(gst).Round(2),
	}, nil
}
