package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"repair_pricing/internal/infrastructure/config"
	"repair_pricing/internal/infrastructure/logger"
	mock_interfaces "repair_pricing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("CATALOG_BACKEND", config.BackendDynamoDB)
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestOpenCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("dynamodb backend cannot migrate", func(t *testing.T) {
		cat, err := OpenCatalog(ctx, testConfig(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cat.Repo == nil {
			t.Fatalf("expected repository")
		}
		if err := cat.Migrate(ctx); !errors.Is(err, ErrMigrateUnsupported) {
			t.Fatalf("expected ErrMigrateUnsupported, got %v", err)
		}
		if err := cat.Close(); err != nil {
			t.Fatalf("unexpected close error: %v", err)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Catalog.Backend = "mysql"
		if _, err := OpenCatalog(ctx, cfg); !errors.Is(err, config.ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestNewEstimator(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockICatalogRepository(ctrl)

	cfg := testConfig(t)
	if _, err := NewEstimator(cfg, repo, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Pricing.QualityMultipliers = "OEM:abc"
	if _, err := NewEstimator(cfg, repo, nil); err == nil {
		t.Fatalf("expected multiplier parse error")
	}
}

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { _ = logger.Init(logger.Options{Level: "info", Format: "json", Output: "stdout"}) })

	cfg := testConfig(t)
	cfg.Log.Output = filepath.Join(t.TempDir(), "pricing.log")
	if err := InitLogger(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Log.Level = "verbose"
	if err := InitLogger(cfg); err == nil {
		t.Fatalf("expected invalid level error")
	}
}
