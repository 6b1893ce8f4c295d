package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	request "repair_pricing/internal/adapter/http/dto/request"
	response "repair_pricing/internal/adapter/http/dto/response"
	"repair_pricing/internal/adapter/http/handlers"
	"repair_pricing/internal/infrastructure/bootstrap"
	"repair_pricing/internal/infrastructure/config"
	"repair_pricing/internal/infrastructure/logger"
	"repair_pricing/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var ErrBatchTooLarge = errors.New("batch exceeds the configured limit")

// Session is what one CLI invocation needs from the catalog.
type Session struct {
	Estimator    usecase.IPriceEstimationUseCase
	MaxBatchSize int
	Migrate      func(ctx context.Context) error
	Close        func() error
}

// Opener builds a Session. Commands call it lazily so --help never touches storage.
type Opener func(ctx context.Context) (*Session, error)

// OpenFromConfig loads configuration from the environment and connects the catalog.
func OpenFromConfig(ctx context.Context) (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := bootstrap.InitLogger(cfg); err != nil {
		return nil, err
	}
	catalog, err := bootstrap.OpenCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	estimator, err := bootstrap.NewEstimator(cfg, catalog.Repo, nil)
	if err != nil {
		_ = catalog.Close()
		return nil, err
	}
	return &Session{
		Estimator:    estimator,
		MaxBatchSize: cfg.Pricing.MaxBatchSize,
		Migrate:      catalog.Migrate,
		Close:        catalog.Close,
	}, nil
}

// NewRootCommand builds the pricingctl command tree.
func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "pricingctl",
		Short: "Repair price estimation from the command line",
		Long: `pricingctl resolves repair prices against the configured catalog
(CATALOG_BACKEND=postgres|dynamodb) using the same engine as the HTTP API.

Output is JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEstimateCommand(open), newBatchCommand(open), newMigrateCommand(open))
	return root
}

func newEstimateCommand(open Opener) *cobra.Command {
	var (
		deviceID uint
		repairID uint
		quality  string
		save     bool
	)
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the price of one repair",
		Long: `Estimate the price of one repair.

Examples:
  pricingctl estimate --device 42 --repair 7 --quality OEM
  pricingctl estimate --device 42 --repair 7 --quality STANDARD --save`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, open, func(ctx context.Context, s *Session) error {
				req := request.EstimateRequest{DeviceModelID: deviceID, RepairTypeID: repairID, PartQuality: quality, Save: save}
				return runEstimate(ctx, cmd.OutOrStdout(), s.Estimator, req)
			})
		},
	}
	cmd.Flags().UintVar(&deviceID, "device", 0, "Device model id")
	cmd.Flags().UintVar(&repairID, "repair", 0, "Repair type id")
	cmd.Flags().StringVar(&quality, "quality", "", "Part quality (e.g. STANDARD, PREMIUM, OEM)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist a derived estimate")
	_ = cmd.MarkFlagRequired("device")
	_ = cmd.MarkFlagRequired("repair")
	_ = cmd.MarkFlagRequired("quality")
	return cmd
}

func runEstimate(ctx context.Context, out io.Writer, uc usecase.IPriceEstimationUseCase, payload request.EstimateRequest) error {
	req := payload.ToUseCase()
	if !payload.Save {
		est, err := uc.Estimate(ctx, req)
		if err != nil {
			return writeFailure(out, err)
		}
		return writeJSON(out, response.FromEstimate(est))
	}

	est, saved, err := uc.EstimateAndSave(ctx, req)
	if err != nil {
		return writeFailure(out, err)
	}
	return writeJSON(out, response.FromEstimate(est).WithSave(saved))
}

func newBatchCommand(open Opener) *cobra.Command {
	var (
		file string
		save bool
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Estimate every repair listed in a YAML file",
		Long: `Estimate every repair listed in a YAML file.

File format:
  save: false
  items:
    - device_model_id: 42
      repair_type_id: 7
      part_quality: OEM

--save overrides the file's save flag when set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := readBatchFile(file)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("save") {
				payload.Save = save
			}
			return withSession(cmd, open, func(ctx context.Context, s *Session) error {
				return runBatch(ctx, cmd.OutOrStdout(), s, payload)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with the batch items")
	cmd.Flags().BoolVar(&save, "save", false, "Persist derived estimates")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readBatchFile(path string) (request.BatchEstimateRequest, error) {
	var payload request.BatchEstimateRequest

	raw, err := os.ReadFile(path)
	if err != nil {
		return payload, fmt.Errorf("failed to read batch file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("failed to parse batch file: %w", err)
	}

	v := validator.New()
	v.SetTagName("binding")
	if err := v.Struct(payload); err != nil {
		return payload, fmt.Errorf("invalid batch file: %w", err)
	}
	return payload, nil
}

func runBatch(ctx context.Context, out io.Writer, s *Session, payload request.BatchEstimateRequest) error {
	if s.MaxBatchSize > 0 && len(payload.Items) > s.MaxBatchSize {
		return fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(payload.Items), s.MaxBatchSize)
	}

	results := s.Estimator.EstimateBatch(ctx, payload.ToUseCase(), payload.Save)
	res := response.FromBatch(results, handlers.DescribeEstimateError)
	logger.Info("[pricing][cli] batch estimated", zap.Int("items", len(results)), zap.Int("failed", res.Failed))
	return writeJSON(out, res)
}

func newMigrateCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog schema (postgres backend)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, open, func(ctx context.Context, s *Session) error {
				if s.Migrate == nil {
					return bootstrap.ErrMigrateUnsupported
				}
				if err := s.Migrate(ctx); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				return writeJSON(cmd.OutOrStdout(), map[string]string{"status": "migrated"})
			})
		},
	}
}

func withSession(cmd *cobra.Command, open Opener, fn func(ctx context.Context, s *Session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if s.Close == nil {
			return
		}
		if err := s.Close(); err != nil {
			logger.Warn("[pricing][cli] failed to close catalog", zap.Error(err))
		}
	}()
	return fn(ctx, s)
}

// errEstimateFailed is returned after the failure body has been written, so the process
// exits non-zero without printing the error twice.
var errEstimateFailed = errors.New("estimate failed")

func writeFailure(out io.Writer, err error) error {
	code, message := handlers.DescribeEstimateError(err)
	if werr := writeJSON(out, map[string]string{"error_code": code, "error": message}); werr != nil {
		return werr
	}
	return fmt.Errorf("%w: %s", errEstimateFailed, code)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
