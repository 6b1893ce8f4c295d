package response

import (
	"repair_pricing/internal/domain/entities"
	"repair_pricing/internal/usecase"

	"github.com/shopspring/decimal"
)

// EstimateResponse renders money as fixed two-decimal strings.
type EstimateResponse struct {
	DeviceModelID     uint     `json:"device_model_id" example:"42"`
	RepairTypeID      uint     `json:"repair_type_id" example:"7"`
	PartQuality       string   `json:"part_quality" example:"OEM"`
	TotalPrice        string   `json:"total_price" example:"192.00"`
	PartsCost         *string  `json:"parts_cost,omitempty" example:"128.00"`
	LaborCost         *string  `json:"labor_cost,omitempty" example:"64.00"`
	IsEstimated       bool     `json:"is_estimated" example:"true"`
	ConfidenceScore   *float64 `json:"confidence_score,omitempty" example:"0.85"`
	Source            string   `json:"source" example:"QUALITY_FALLBACK"`
	ReferenceModelIDs []uint   `json:"reference_model_ids"`
	Persisted         *bool    `json:"persisted,omitempty"`
	PersistReason     string   `json:"persist_reason,omitempty"`
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	refs := e.ReferenceModelIDs
	if refs == nil {
		refs = []uint{}
	}
	return EstimateResponse{
		DeviceModelID:     e.Key.DeviceModelID,
		RepairTypeID:      e.Key.RepairTypeID,
		PartQuality:       string(e.Key.PartQuality),
		TotalPrice:        e.TotalPrice.StringFixed(2),
		PartsCost:         money(e.PartsCost),
		LaborCost:         money(e.LaborCost),
		IsEstimated:       e.IsEstimated,
		ConfidenceScore:   e.ConfidenceScore,
		Source:            string(e.Source),
		ReferenceModelIDs: refs,
	}
}

// WithSave adds the persistence outcome of an opt-in save.
func (r EstimateResponse) WithSave(s entities.SaveResult) EstimateResponse {
	persisted := s.Persisted
	r.Persisted = &persisted
	r.PersistReason = s.Reason
	return r
}

func money(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}

type BatchItemResponse struct {
	Index     int               `json:"index"`
	Estimate  *EstimateResponse `json:"estimate,omitempty"`
	ErrorCode string            `json:"error_code,omitempty" example:"NO_PRICING_DATA"`
	Error     string            `json:"error,omitempty"`
}

type BatchEstimateResponse struct {
	Results   []BatchItemResponse `json:"results"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// FromBatch renders batch results in request order. describe maps a per-item error to
// its public code and message.
func FromBatch(results []usecase.BatchItemResult, describe func(error) (code, message string)) BatchEstimateResponse {
	out := BatchEstimateResponse{Results: make([]BatchItemResponse, 0, len(results))}
	for i, r := range results {
		item := BatchItemResponse{Index: i}
		if r.Estimate != nil {
			est := FromEstimate(*r.Estimate)
			if r.Save != nil {
				est = est.WithSave(*r.Save)
			}
			item.Estimate = &est
		}
		if r.Err != nil {
			item.ErrorCode, item.Error = describe(r.Err)
			out.Failed++
		} else {
			out.Succeeded++
		}
		out.Results = append(out.Results, item)
	}
	return out
}
