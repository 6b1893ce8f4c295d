package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"repair_pricing/internal/adapter/persistence/repository"
	"repair_pricing/internal/infrastructure/config"
	"repair_pricing/internal/infrastructure/database"
	"repair_pricing/internal/infrastructure/logger"
	"repair_pricing/internal/usecase"
	"repair_pricing/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var ErrMigrateUnsupported = errors.New("schema migration is only supported for the postgres backend")

// Catalog is an opened catalog backend.
type Catalog struct {
	Repo    interfaces.ICatalogRepository
	migrate func(ctx context.Context) error
	close   func() error
}

// OpenCatalog connects the backend selected by catalog.backend.
func OpenCatalog(ctx context.Context, cfg *config.Config) (*Catalog, error) {
	switch cfg.Catalog.Backend {
	case config.BackendPostgres:
		db, err := database.ConnectPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		repo := repository.NewCatalogGormRepository(db)
		return &Catalog{Repo: repo, migrate: repo.Migrate, close: sqlDB.Close}, nil

	case config.BackendDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS, cfg.DynamoDB)
		if err != nil {
			return nil, err
		}
		logger.Info("[catalog][database] dynamodb client ready",
			zap.String("region", cfg.AWS.Region),
			zap.String("prices_table", cfg.DynamoDB.PricesTable),
		)
		repo := repository.NewCatalogDynamoRepository(ddb, repository.CatalogTables{
			Prices:       cfg.DynamoDB.PricesTable,
			DeviceModels: cfg.DynamoDB.DeviceModelsTable,
			RepairTypes:  cfg.DynamoDB.RepairTypesTable,
		})
		return &Catalog{Repo: repo}, nil

	default:
		return nil, fmt.Errorf("%w: unknown catalog backend %q", config.ErrInvalidConfig, cfg.Catalog.Backend)
	}
}

// Migrate applies the relational schema. DynamoDB tables are provisioned outside the
// service.
func (c *Catalog) Migrate(ctx context.Context) error {
	if c.migrate == nil {
		return ErrMigrateUnsupported
	}
	return c.migrate(ctx)
}

func (c *Catalog) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}

// NewEstimator builds the estimation use case on top of the catalog.
func NewEstimator(cfg *config.Config, repo interfaces.ICatalogRepository, metrics interfaces.IEstimationMetrics) (*usecase.PriceEstimationUseCase, error) {
	policy, err := cfg.Pricing.EstimationPolicy()
	if err != nil {
		return nil, err
	}
	return usecase.NewPriceEstimationUseCase(repo, policy, metrics), nil
}

// InitLogger configures the process logger from cfg.
func InitLogger(cfg *config.Config) error {
	return logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
}
