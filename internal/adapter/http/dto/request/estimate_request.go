package request

import (
	"repair_pricing/internal/domain/entities"
	"repair_pricing/internal/usecase"
)

// EstimateRequest asks for the price of one repair. Save opts in to persisting a derived
// estimate.
type EstimateRequest struct {
	DeviceModelID uint   `json:"device_model_id" binding:"required,min=1" example:"42"`
	RepairTypeID  uint   `json:"repair_type_id" binding:"required,min=1" example:"7"`
	PartQuality   string `json:"part_quality" binding:"required" example:"OEM"`
	Save          bool   `json:"save"`
}

func (r EstimateRequest) ToUseCase() usecase.EstimateRequest {
	return usecase.EstimateRequest{
		DeviceModelID: r.DeviceModelID,
		RepairTypeID:  r.RepairTypeID,
		PartQuality:   entities.NormalizePartQuality(r.PartQuality),
	}
}

type BatchEstimateItem struct {
	DeviceModelID uint   `json:"device_model_id" binding:"required,min=1" yaml:"device_model_id"`
	RepairTypeID  uint   `json:"repair_type_id" binding:"required,min=1" yaml:"repair_type_id"`
	PartQuality   string `json:"part_quality" binding:"required" yaml:"part_quality"`
}

func (i BatchEstimateItem) ToUseCase() usecase.EstimateRequest {
	return usecase.EstimateRequest{
		DeviceModelID: i.DeviceModelID,
		RepairTypeID:  i.RepairTypeID,
		PartQuality:   entities.NormalizePartQuality(i.PartQuality),
	}
}

// BatchEstimateRequest is shared by the HTTP batch endpoint and pricingctl batch files.
type BatchEstimateRequest struct {
	Items []BatchEstimateItem `json:"items" binding:"required,min=1,dive" yaml:"items"`
	Save  bool                `json:"save" yaml:"save"`
}

func (r BatchEstimateRequest) ToUseCase() []usecase.EstimateRequest {
	out := make([]usecase.EstimateRequest, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.ToUseCase())
	}
	return out
}
