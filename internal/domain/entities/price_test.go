package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRoundMoney(t *testing.T) {
	cases := map[string]string{
		"10.005":  "10.01",
		"10.004":  "10",
		"79.992":  "79.99",
		"127.995": "128",
	}
	for in, want := range cases {
		got := RoundMoney(decimal.RequireFromString(in))
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("RoundMoney(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestPrice_Authoritative(t *testing.T) {
	if (Price{}).Found() {
		t.Fatalf("zero price must not be found")
	}
	p := Price{Key: PriceKey{DeviceModelID: 1, RepairTypeID: 2, PartQuality: PartQualityOEM}}
	if !p.Authoritative() {
		t.Fatalf("expected authoritative")
	}
	p.IsEstimated = true
	if p.Authoritative() {
		t.Fatalf("estimated row must not be authoritative")
	}
	if p.Key.String() != "1#2#OEM" {
		t.Fatalf("unexpected key string %q", p.Key.String())
	}
}

func TestEstimate_ToEstimatedPrice(t *testing.T) {
	c := 0.5
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e := Estimate{
		Key:             PriceKey{DeviceModelID: 1, RepairTypeID: 2, PartQuality: PartQualityStandard},
		TotalPrice:      decimal.RequireFromString("50.00"),
		ConfidenceScore: &c,
		Source:          EstimateSourceAnalogyFallback,
	}

	p := e.ToEstimatedPrice(now)
	if !p.IsEstimated || p.ConfidenceScore == nil || *p.ConfidenceScore != 0.5 {
		t.Fatalf("unexpected price: %+v", p)
	}
	if !p.CreatedAt.Equal(now) || !p.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps: %+v", p)
	}
}
