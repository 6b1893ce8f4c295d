package interfaces

import (
	"context"
	"repair_pricing/internal/domain/entities"
)

// ICatalogRepository abstracts the catalog store read and written by the estimator.
//
// Conventions (same as the other repositories):
//   - Lookups return the zero value and a nil error when nothing matches.
//   - Storage faults are returned unchanged; implementations never retry.
//
// UpsertEstimatedPrice is the only write. It must be a single conditional write on the
// price key: create or overwrite an estimated row, never touch an authoritative one.
// When an authoritative row exists it returns (that row, false, nil).

type ICatalogRepository interface {
	GetDeviceModel(ctx context.Context, id uint) (entities.DeviceModel, error)
	GetRepairType(ctx context.Context, id uint) (entities.RepairType, error)
	GetExactPrice(ctx context.Context, key entities.PriceKey) (entities.Price, error)
	ListPricesForDeviceAcrossQualities(ctx context.Context, deviceModelID, repairTypeID uint) ([]entities.Price, error)
	ListDeviceModelsByCategory(ctx context.Context, category entities.DeviceCategory) ([]entities.DeviceModel, error)
	ListPricesForModelsAndRepair(ctx context.Context, deviceModelIDs []uint, repairTypeID uint, quality entities.PartQuality) ([]entities.Price, error)
	UpsertEstimatedPrice(ctx context.Context, p entities.Price) (stored entities.Price, persisted bool, err error)
}
