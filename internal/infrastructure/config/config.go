package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"repair_pricing/internal/domain/entities"
	"repair_pricing/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Database DatabaseConfig `mapstructure:"database"`
	AWS      AWSConfig      `mapstructure:"aws"`
	DynamoDB DynamoDBConfig `mapstructure:"dynamodb"`
	Log      LogConfig      `mapstructure:"log"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
}

type HTTPConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CatalogConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=postgres dynamodb"`
}

// DatabaseConfig configures the Postgres catalog. URL wins over the discrete fields.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the connection string for gorm's postgres driver.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type AWSConfig struct {
	Region          string `mapstructure:"region" validate:"required"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type DynamoDBConfig struct {
	Endpoint          string `mapstructure:"endpoint"`
	PricesTable       string `mapstructure:"prices_table" validate:"required"`
	DeviceModelsTable string `mapstructure:"device_models_table" validate:"required"`
	RepairTypesTable  string `mapstructure:"repair_types_table" validate:"required"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=json console"`
	Output     string `mapstructure:"output" validate:"required"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=0"`
}

// PricingConfig carries the estimation policy constants. See usecase.EstimationPolicy.
type PricingConfig struct {
	CrossBrandDistance    float64 `mapstructure:"cross_brand_distance" validate:"gte=0"`
	TierWeight            float64 `mapstructure:"tier_weight" validate:"gte=0"`
	YearWeight            float64 `mapstructure:"year_weight" validate:"gte=0"`
	MaxSameBrandDistance  float64 `mapstructure:"max_same_brand_distance" validate:"gte=0"`
	CrossBrandPrimaryOnly bool    `mapstructure:"cross_brand_primary_only"`

	QualityBaseConfidence float64 `mapstructure:"quality_base_confidence" validate:"gte=0,lte=1"`
	QualityStepPenalty    float64 `mapstructure:"quality_step_penalty" validate:"gte=0,lte=1"`
	QualityMinConfidence  float64 `mapstructure:"quality_min_confidence" validate:"gte=0,lte=1"`

	AnalogyBaseConfidence         float64 `mapstructure:"analogy_base_confidence" validate:"gte=0,lte=1"`
	TierConfidencePenalty         float64 `mapstructure:"tier_confidence_penalty" validate:"gte=0,lte=1"`
	YearConfidencePenalty         float64 `mapstructure:"year_confidence_penalty" validate:"gte=0,lte=1"`
	CrossBrandConfidencePenalty   float64 `mapstructure:"cross_brand_confidence_penalty" validate:"gte=0,lte=1"`
	CrossQualityConfidencePenalty float64 `mapstructure:"cross_quality_confidence_penalty" validate:"gte=0,lte=1"`
	MinConfidence                 float64 `mapstructure:"min_confidence" validate:"gte=0,lte=1"`

	QualityMultipliers string `mapstructure:"quality_multipliers" validate:"required"`
	MaxBatchSize       int    `mapstructure:"max_batch_size" validate:"min=1,max=1000"`
}

// EstimationPolicy builds the estimator policy, parsing the quality multiplier table.
func (c PricingConfig) EstimationPolicy() (usecase.EstimationPolicy, error) {
	tiers, err := entities.ParseQualityMultipliers(c.QualityMultipliers)
	if err != nil {
		return usecase.EstimationPolicy{}, err
	}
	table, err := entities.NewQualityTable(tiers)
	if err != nil {
		return usecase.EstimationPolicy{}, err
	}

	return usecase.EstimationPolicy{
		CrossBrandDistance:    c.CrossBrandDistance,
		TierWeight:            c.TierWeight,
		YearWeight:            c.YearWeight,
		MaxSameBrandDistance:  c.MaxSameBrandDistance,
		CrossBrandPrimaryOnly: c.CrossBrandPrimaryOnly,

		QualityBaseConfidence: c.QualityBaseConfidence,
		QualityStepPenalty:    c.QualityStepPenalty,
		QualityMinConfidence:  c.QualityMinConfidence,

		AnalogyBaseConfidence:         c.AnalogyBaseConfidence,
		TierConfidencePenalty:         c.TierConfidencePenalty,
		YearConfidencePenalty:         c.YearConfidencePenalty,
		CrossBrandConfidencePenalty:   c.CrossBrandConfidencePenalty,
		CrossQualityConfidencePenalty: c.CrossQualityConfidencePenalty,
		MinConfidence:                 c.MinConfidence,

		Qualities: table,
	}, nil
}

var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads configuration from the environment (HTTP_PORT, CATALOG_BACKEND,
// PRICING_TIER_WEIGHT, ...) and, when PRICING_CONFIG_FILE is set, from that YAML file.
// Environment values win over the file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if file := v.GetString("pricing_config_file"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Catalog.Backend = strings.ToLower(strings.TrimSpace(cfg.Catalog.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Pricing.QualityMinConfidence > c.Pricing.QualityBaseConfidence {
		return fmt.Errorf("%w: pricing.quality_min_confidence above pricing.quality_base_confidence", ErrInvalidConfig)
	}
	if c.Pricing.MinConfidence > c.Pricing.AnalogyBaseConfidence {
		return fmt.Errorf("%w: pricing.min_confidence above pricing.analogy_base_confidence", ErrInvalidConfig)
	}
	if c.Pricing.AnalogyBaseConfidence > c.Pricing.QualityMinConfidence {
		return fmt.Errorf("%w: analogy estimates must not outrank same-device estimates", ErrInvalidConfig)
	}
	if _, err := c.Pricing.EstimationPolicy(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pricing_config_file", "")

	v.SetDefault("http.port", 8080)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("catalog.backend", BackendPostgres)

	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "repair_pricing")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.access_key_id", "local")
	v.SetDefault("aws.secret_access_key", "local")

	v.SetDefault("dynamodb.endpoint", "")
	v.SetDefault("dynamodb.prices_table", "prices")
	v.SetDefault("dynamodb.device_models_table", "device_models")
	v.SetDefault("dynamodb.repair_types_table", "repair_types")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	p := usecase.DefaultEstimationPolicy()
	v.SetDefault("pricing.cross_brand_distance", p.CrossBrandDistance)
	v.SetDefault("pricing.tier_weight", p.TierWeight)
	v.SetDefault("pricing.year_weight", p.YearWeight)
	v.SetDefault("pricing.max_same_brand_distance", p.MaxSameBrandDistance)
	v.SetDefault("pricing.cross_brand_primary_only", p.CrossBrandPrimaryOnly)
	v.SetDefault("pricing.quality_base_confidence", p.QualityBaseConfidence)
	v.SetDefault("pricing.quality_step_penalty", p.QualityStepPenalty)
	v.SetDefault("pricing.quality_min_confidence", p.QualityMinConfidence)
	v.SetDefault("pricing.analogy_base_confidence", p.AnalogyBaseConfidence)
	v.SetDefault("pricing.tier_confidence_penalty", p.TierConfidencePenalty)
	v.SetDefault("pricing.year_confidence_penalty", p.YearConfidencePenalty)
	v.SetDefault("pricing.cross_brand_confidence_penalty", p.CrossBrandConfidencePenalty)
	v.SetDefault("pricing.cross_quality_confidence_penalty", p.CrossQualityConfidencePenalty)
	v.SetDefault("pricing.min_confidence", p.MinConfidence)
	v.SetDefault("pricing.quality_multipliers", "STANDARD:1.00,PREMIUM:1.25,OEM:1.60")
	v.SetDefault("pricing.max_batch_size", 100)
}
