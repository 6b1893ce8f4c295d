package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceKey identifies a Price row. At most one row exists per key.
type PriceKey struct {
	DeviceModelID uint        `json:"device_model_id"`
	RepairTypeID  uint        `json:"repair_type_id"`
	PartQuality   PartQuality `json:"part_quality"`
}

func (k PriceKey) String() string {
	return fmt.Sprintf("%d#%d#%s", k.DeviceModelID, k.RepairTypeID, k.PartQuality)
}

// Price is an authoritative (operator-entered) or derived (estimated) repair price.
//
// Domain notes:
//   - ConfidenceScore is set iff IsEstimated.
//   - An authoritative row is never replaced by an estimate; estimated rows may be
//     refreshed at any time.
//
// Monetary representation:
//   - fixed point, two decimal places.
type Price struct {
	Key             PriceKey            `json:"key"`
	PartsCost       decimal.NullDecimal `json:"parts_cost"`
	LaborCost       decimal.NullDecimal `json:"labor_cost"`
	TotalPrice      decimal.Decimal     `json:"total_price"`
	IsEstimated     bool                `json:"is_estimated"`
	ConfidenceScore *float64            `json:"confidence_score,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// Found reports whether the price was loaded from the store. Repositories return the
// zero value when a row does not exist.
func (p Price) Found() bool {
	return p.Key.DeviceModelID != 0
}

func (p Price) Authoritative() bool {
	return p.Found() && !p.IsEstimated
}

// RoundMoney rounds half-up to the cent (amounts are never negative).
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
