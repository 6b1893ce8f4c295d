package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstimateSource tells which resolution path produced an Estimate.
type EstimateSource string

const (
	EstimateSourceExact           EstimateSource = "EXACT"
	EstimateSourceQualityFallback EstimateSource = "QUALITY_FALLBACK"
	EstimateSourceAnalogyFallback EstimateSource = "ANALOGY_FALLBACK"
)

// Estimate is the resolved price for a PriceKey.
//
// Domain notes:
//   - EXACT estimates pass the stored row through unchanged (IsEstimated and
//     ConfidenceScore included).
//   - ReferenceModelIDs lists the device model(s) whose stored price was used.
//   - Source is informational and not part of the persisted Price.
type Estimate struct {
	Key               PriceKey            `json:"key"`
	TotalPrice        decimal.Decimal     `json:"total_price"`
	PartsCost         decimal.NullDecimal `json:"parts_cost"`
	LaborCost         decimal.NullDecimal `json:"labor_cost"`
	IsEstimated       bool                `json:"is_estimated"`
	ConfidenceScore   *float64            `json:"confidence_score,omitempty"`
	Source            EstimateSource      `json:"source"`
	ReferenceModelIDs []uint              `json:"reference_model_ids"`
}

// ToEstimatedPrice converts a derived estimate into the row written by persistence.
func (e Estimate) ToEstimatedPrice(now time.Time) Price {
	return Price{
		Key:             e.Key,
		PartsCost:       e.PartsCost,
		LaborCost:       e.LaborCost,
		TotalPrice:      e.TotalPrice,
		IsEstimated:     true,
		ConfidenceScore: e.ConfidenceScore,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// SaveResult reports the outcome of persisting an estimate.
//
// Conflict is set when an authoritative row exists for the key; Price then holds that
// row. It is a successful no-op, not an error.
type SaveResult struct {
	Persisted bool   `json:"persisted"`
	Conflict  bool   `json:"conflict"`
	Reason    string `json:"reason,omitempty"`
	Price     Price  `json:"price"`
}
