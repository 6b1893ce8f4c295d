package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"repair_pricing/internal/domain/entities"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CATALOG_BACKEND", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.HTTP.Port != 8080 || cfg.Catalog.Backend != BackendPostgres || cfg.Pricing.MaxBatchSize != 100 {
			t.Fatalf("unexpected defaults: %+v", cfg)
		}

		policy, err := cfg.Pricing.EstimationPolicy()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if policy.TierWeight != 3 || policy.CrossBrandDistance != 100 || len(policy.Qualities.Tiers()) != 3 {
			t.Fatalf("unexpected policy: %+v", policy)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("CATALOG_BACKEND", " DynamoDB ")
		t.Setenv("PRICING_TIER_WEIGHT", "5")
		t.Setenv("PRICING_CROSS_BRAND_PRIMARY_ONLY", "true")
		t.Setenv("PRICING_QUALITY_MULTIPLIERS", "BASIC:1,STANDARD:1.1,OEM:2")
		t.Setenv("DYNAMODB_PRICES_TABLE", "pricing-prices")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Catalog.Backend != BackendDynamoDB || cfg.DynamoDB.PricesTable != "pricing-prices" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
		policy, err := cfg.Pricing.EstimationPolicy()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if policy.TierWeight != 5 || !policy.CrossBrandPrimaryOnly || !policy.Qualities.Valid("BASIC") {
			t.Fatalf("unexpected policy: %+v", policy)
		}
	})

	t.Run("yaml file", func(t *testing.T) {
		t.Setenv("CATALOG_BACKEND", "")
		path := filepath.Join(t.TempDir(), "pricing.yaml")
		body := "pricing:\n  year_weight: 2\n  max_batch_size: 10\nhttp:\n  port: 9090\n"
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv("PRICING_CONFIG_FILE", path)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Pricing.YearWeight != 2 || cfg.Pricing.MaxBatchSize != 10 || cfg.HTTP.Port != 9090 {
			t.Fatalf("unexpected config: %+v", cfg)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("CATALOG_BACKEND", "mongo")
		if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("non monotonic multipliers", func(t *testing.T) {
		t.Setenv("CATALOG_BACKEND", "")
		t.Setenv("PRICING_QUALITY_MULTIPLIERS", "STANDARD:1.5,OEM:1.2")
		_, err := Load()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("confidence out of range", func(t *testing.T) {
		t.Setenv("CATALOG_BACKEND", "")
		t.Setenv("PRICING_MIN_CONFIDENCE", "1.5")
		if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestPricingConfig_EstimationPolicy(t *testing.T) {
	_, err := PricingConfig{QualityMultipliers: "STANDARD:0"}.EstimationPolicy()
	if !errors.Is(err, entities.ErrInvalidQualityMultiplier) {
		t.Fatalf("expected ErrInvalidQualityMultiplier, got %v", err)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "pricing", SSLMode: "disable"}
	if got := c.DSN(); got != "host=db port=5432 user=u password=p dbname=pricing sslmode=disable" {
		t.Fatalf("unexpected dsn %q", got)
	}
	c.URL = "postgres://u:p@db/pricing"
	if c.DSN() != c.URL {
		t.Fatalf("expected url to win")
	}
}
