package repository

import (
	"context"
	"errors"
	"time"

	"repair_pricing/internal/domain/entities"
	"repair_pricing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type brandRow struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:120;not null"`
	IsPrimary bool   `gorm:"not null;default:false"`
}

func (brandRow) TableName() string { return "brands" }

type deviceModelRow struct {
	ID           uint     `gorm:"primaryKey"`
	BrandID      uint     `gorm:"not null;index"`
	Brand        brandRow `gorm:"foreignKey:BrandID"`
	Name         string   `gorm:"size:160;not null"`
	TierLevel    int      `gorm:"not null"`
	ReleaseYear  int      `gorm:"not null"`
	ReleaseMonth *int
	Category     string `gorm:"size:16;not null;index"`
	IsActive     bool   `gorm:"not null"`
}

func (deviceModelRow) TableName() string { return "device_models" }

type repairTypeRow struct {
	ID               uint   `gorm:"primaryKey"`
	Name             string `gorm:"size:120;not null"`
	ComplexityWeight *float64
}

func (repairTypeRow) TableName() string { return "repair_types" }

type priceRow struct {
	ID              uint                `gorm:"primaryKey"`
	DeviceModelID   uint                `gorm:"not null;uniqueIndex:idx_prices_key"`
	RepairTypeID    uint                `gorm:"not null;uniqueIndex:idx_prices_key"`
	PartQuality     string              `gorm:"size:32;not null;uniqueIndex:idx_prices_key"`
	PartsCost       decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	LaborCost       decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	TotalPrice      decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	IsEstimated     bool                `gorm:"not null;default:false"`
	ConfidenceScore *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (priceRow) TableName() string { return "prices" }

// CatalogGormRepository reads the catalog from a relational database (Postgres in
// production) and writes estimated prices into it.
//
// Table requirements:
//   - prices: unique index on (device_model_id, repair_type_id, part_quality)
//
// Schema changes are applied only through Migrate.

type CatalogGormRepository struct {
	db *gorm.DB
}

var _ interfaces.ICatalogRepository = (*CatalogGormRepository)(nil)

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// Migrate creates or updates the catalog tables.
func (r *CatalogGormRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&brandRow{}, &deviceModelRow{}, &repairTypeRow{}, &priceRow{})
}

func (r *CatalogGormRepository) GetDeviceModel(ctx context.Context, id uint) (entities.DeviceModel, error) {
	var row deviceModelRow
	err := r.db.WithContext(ctx).Preload("Brand").First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.DeviceModel{}, nil
	}
	if err != nil {
		return entities.DeviceModel{}, err
	}
	return fromDeviceModelRow(row), nil
}

func (r *CatalogGormRepository) GetRepairType(ctx context.Context, id uint) (entities.RepairType, error) {
	var row repairTypeRow
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.RepairType{}, nil
	}
	if err != nil {
		return entities.RepairType{}, err
	}
	return entities.RepairType{ID: row.ID, Name: row.Name, ComplexityWeight: row.ComplexityWeight}, nil
}

func (r *CatalogGormRepository) GetExactPrice(ctx context.Context, key entities.PriceKey) (entities.Price, error) {
	var row priceRow
	err := r.db.WithContext(ctx).
		Where("device_model_id = ? AND repair_type_id = ? AND part_quality = ?", key.DeviceModelID, key.RepairTypeID, string(key.PartQuality)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Price{}, nil
	}
	if err != nil {
		return entities.Price{}, err
	}
	return fromPriceRow(row), nil
}

func (r *CatalogGormRepository) ListPricesForDeviceAcrossQualities(ctx context.Context, deviceModelID, repairTypeID uint) ([]entities.Price, error) {
	var rows []priceRow
	err := r.db.WithContext(ctx).
		Where("device_model_id = ? AND repair_type_id = ?", deviceModelID, repairTypeID).
		Order("part_quality").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromPriceRows(rows), nil
}

// ListDeviceModelsByCategory includes inactive models.
func (r *CatalogGormRepository) ListDeviceModelsByCategory(ctx context.Context, category entities.DeviceCategory) ([]entities.DeviceModel, error) {
	var rows []deviceModelRow
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Where("category = ?", string(category)).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entities.DeviceModel, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromDeviceModelRow(row))
	}
	return out, nil
}

func (r *CatalogGormRepository) ListPricesForModelsAndRepair(ctx context.Context, deviceModelIDs []uint, repairTypeID uint, quality entities.PartQuality) ([]entities.Price, error) {
	if len(deviceModelIDs) == 0 {
		return nil, nil
	}

	var rows []priceRow
	err := r.db.WithContext(ctx).
		Where("device_model_id IN ? AND repair_type_id = ? AND part_quality = ?", deviceModelIDs, repairTypeID, string(quality)).
		Order("device_model_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromPriceRows(rows), nil
}

// UpsertEstimatedPrice inserts the estimate or overwrites an estimated row in a single
// statement. The update branch only fires while the stored row is still estimated, so an
// authoritative row that appeared concurrently is left untouched.
func (r *CatalogGormRepository) UpsertEstimatedPrice(ctx context.Context, p entities.Price) (entities.Price, bool, error) {
	row := toPriceRow(p)
	row.IsEstimated = true

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "device_model_id"}, {Name: "repair_type_id"}, {Name: "part_quality"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"parts_cost", "labor_cost", "total_price", "is_estimated", "confidence_score", "updated_at",
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "prices", Name: "is_estimated"}, Value: true},
		}},
	}).Create(&row)
	if res.Error != nil {
		return entities.Price{}, false, res.Error
	}

	stored, err := r.GetExactPrice(ctx, p.Key)
	if err != nil {
		return entities.Price{}, false, err
	}
	return stored, res.RowsAffected > 0, nil
}

func fromDeviceModelRow(row deviceModelRow) entities.DeviceModel {
	m := entities.DeviceModel{
		ID:          row.ID,
		Brand:       entities.Brand{ID: row.Brand.ID, Name: row.Brand.Name, Primary: row.Brand.IsPrimary},
		Name:        row.Name,
		TierLevel:   row.TierLevel,
		ReleaseYear: row.ReleaseYear,
		Category:    entities.DeviceCategory(row.Category),
		Active:      row.IsActive,
	}
	if row.ReleaseMonth != nil {
		m.ReleaseMonth = *row.ReleaseMonth
	}
	return m
}

func toPriceRow(p entities.Price) priceRow {
	return priceRow{
		DeviceModelID:   p.Key.DeviceModelID,
		RepairTypeID:    p.Key.RepairTypeID,
		PartQuality:     string(p.Key.PartQuality),
		PartsCost:       p.PartsCost,
		LaborCost:       p.LaborCost,
		TotalPrice:      p.TotalPrice,
		IsEstimated:     p.IsEstimated,
		ConfidenceScore: p.ConfidenceScore,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func fromPriceRow(row priceRow) entities.Price {
	return entities.Price{
		Key: entities.PriceKey{
			DeviceModelID: row.DeviceModelID,
			RepairTypeID:  row.RepairTypeID,
			PartQuality:   entities.PartQuality(row.PartQuality),
		},
		PartsCost:       row.PartsCost,
		LaborCost:       row.LaborCost,
		TotalPrice:      row.TotalPrice,
		IsEstimated:     row.IsEstimated,
		ConfidenceScore: row.ConfidenceScore,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func fromPriceRows(rows []priceRow) []entities.Price {
	out := make([]entities.Price, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromPriceRow(row))
	}
	return out
}
