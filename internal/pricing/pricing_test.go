package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCompute_PerGramMakingCharge(t *testing.T) {
	got, err := Compute(Inputs{
		NetWeight:         dec("10"),
		MetalRate:         dec("5000"),
		WastagePercentage: dec("2"),
		MakingChargeType:  enums.MakingChargePerGram,
		MakingChargeValue: dec("300"),
		StonePrice:        dec("0"),
		GSTPercentage:     dec("3"),
	})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	if !got.BaseAmount.Equal(dec("50000")) {
		t.Fatalf("base = %s, want 50000", got.BaseAmount)
	}
	if !got.WastageAmount.Equal(dec("1000")) {
		t.Fatalf("wastage = %s, want 1000", got.WastageAmount)
	}
	if !got.MakingCharge.Equal(dec("3000")) {
		t.Fatalf("making = %s, want 3000", got.MakingCharge)
	}
	if !got.Subtotal.Equal(dec("54000")) {
		t.Fatalf("subtotal = %s, want 54000", got.Subtotal)
	}
	if !got.GSTAmount.Equal(dec("1620")) {
		t.Fatalf("gst = %s, want 1620", got.GSTAmount)
	}
	if got.FinalPrice.StringFixed(2) != "55620.00" {
		t.Fatalf("final = %s, want 55620.00", got.FinalPrice.StringFixed(2))
	}
}

func TestCompute_FixedMakingCharge(t *testing.T) {
	got, err := Compute(Inputs{
		NetWeight:         dec("5.5"),
		MetalRate:         dec("6200"),
		WastagePercentage: dec("0"),
		MakingChargeType:  enums.MakingChargeFixed,
		MakingChargeValue: dec("2500"),
		StonePrice:        dec("1200"),
		GSTPercentage:     dec("3"),
	})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	// 5.5*6200 = 34100; +2500 +1200 = 37800; gst 1134; total 38934.00
	if !got.MakingCharge.Equal(dec("2500")) {
		t.Fatalf("making = %s, want 2500", got.MakingCharge)
	}
	if got.FinalPrice.StringFixed(2) != "38934.00" {
		t.Fatalf("final = %s, want 38934.00", got.FinalPrice.StringFixed(2))
	}
}

func TestCompute_RoundsOnlyFinalPrice(t *testing.T) {
	got, err := Compute(Inputs{
		NetWeight:         dec("3.333"),
		MetalRate:         dec("7001.01"),
		WastagePercentage: dec("1.5"),
		MakingChargeType:  enums.MakingChargePerGram,
		MakingChargeValue: dec("333.33"),
		StonePrice:        dec("0.005"),
		GSTPercentage:     dec("3"),
	})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	if got.Subtotal.Equal(got.Subtotal.Round(2)) {
		t.Skip("inputs no longer produce an unrounded subtotal")
	}
	want := got.Subtotal.Add(got.GSTAmount).Round(2)
	if !got.FinalPrice.Equal(want) {
		t.Fatalf("final = %s, want %s", got.FinalPrice, want)
	}
	if got.FinalPrice.Exponent() < -2 {
		t.Fatalf("final price should carry at most two decimals, got %s", got.FinalPrice)
	}
}

func TestCompute_ZeroWeightAndRate(t *testing.T) {
	got, err := Compute(Inputs{
		NetWeight:        dec("0"),
		MetalRate:        dec("0"),
		MakingChargeType: enums.MakingChargeFixed,
	})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if !got.FinalPrice.IsZero() {
		t.Fatalf("final = %s, want 0", got.FinalPrice)
	}
}

func TestCompute_RejectsNegativeInputs(t *testing.T) {
	_, err := Compute(Inputs{
		NetWeight:        dec("-1"),
		MetalRate:        dec("5000"),
		MakingChargeType: enums.MakingChargeFixed,
	})
	if err == nil {
		t.Fatal("expected error for negative net weight")
	}
}

func TestCompute_RejectsUnknownMakingChargeType(t *testing.T) {
	_, err := Compute(Inputs{
		NetWeight:        dec("1"),
		MetalRate:        dec("5000"),
		MakingChargeType: enums.MakingChargeType("hourly"),
	})
	if err == nil {
		t.Fatal("expected error for unknown making charge type")
	}
}
