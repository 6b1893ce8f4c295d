package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"repair_pricing/internal/domain/entities"
	"repair_pricing/internal/infrastructure/logger"
	"repair_pricing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrDeviceModelNotFound  = fmt.Errorf("device model %w", ErrNotFound)
	ErrRepairTypeNotFound   = fmt.Errorf("repair type %w", ErrNotFound)
	ErrInvalidDeviceModelID = errors.New("invalid device_model_id")
	ErrInvalidRepairTypeID  = errors.New("invalid repair_type_id")
	ErrInvalidPartQuality   = errors.New("invalid part quality")
	ErrNoPricingData        = errors.New("no pricing data available")
	ErrNotAnEstimate        = errors.New("estimate has no confidence score")
)

const (
	SaveReasonExactStored         = "exact price already stored"
	SaveReasonAuthoritativeExists = "not persisted: authoritative price exists"

	PersistOutcomePersisted = "persisted"
	PersistOutcomeConflict  = "authoritative_exists"
	PersistOutcomeSkipped   = "skipped"
	PersistOutcomeError     = "error"
)

// EstimateRequest asks for the price of a repair type on a device model with a given
// part quality.
type EstimateRequest struct {
	DeviceModelID uint
	RepairTypeID  uint
	PartQuality   entities.PartQuality
}

func (r EstimateRequest) Key() entities.PriceKey {
	return entities.PriceKey{DeviceModelID: r.DeviceModelID, RepairTypeID: r.RepairTypeID, PartQuality: r.PartQuality}
}

// BatchItemResult is the outcome of one batch entry. Err is nil on success; Save is set
// only when persistence was requested and attempted.
type BatchItemResult struct {
	Request  EstimateRequest
	Estimate *entities.Estimate
	Save     *entities.SaveResult
	Err      error
}

// IPriceEstimationUseCase exposes the price estimation engine.
//
//   - Estimate: exact price, else quality fallback, else analogy fallback, else
//     ErrNoPricingData. No side effects.
//   - SaveEstimate: persist a derived estimate without ever replacing an authoritative row.
//   - EstimateAndSave: both, for callers that opt in to persistence.
//   - EstimateBatch: one result per request, failures reported per item.

type IPriceEstimationUseCase interface {
	Estimate(ctx context.Context, req EstimateRequest) (entities.Estimate, error)
	SaveEstimate(ctx context.Context, est entities.Estimate) (entities.SaveResult, error)
	EstimateAndSave(ctx context.Context, req EstimateRequest) (entities.Estimate, entities.SaveResult, error)
	EstimateBatch(ctx context.Context, reqs []EstimateRequest, save bool) []BatchItemResult
}

type PriceEstimationUseCase struct {
	repo    interfaces.ICatalogRepository
	policy  EstimationPolicy
	metrics interfaces.IEstimationMetrics
	now     func() time.Time
}

var _ IPriceEstimationUseCase = (*PriceEstimationUseCase)(nil)

// NewPriceEstimationUseCase wires the estimator. metrics may be nil.
func NewPriceEstimationUseCase(repo interfaces.ICatalogRepository, policy EstimationPolicy, metrics interfaces.IEstimationMetrics) *PriceEstimationUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &PriceEstimationUseCase{
		repo:    repo,
		policy:  policy,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (u *PriceEstimationUseCase) Estimate(ctx context.Context, req EstimateRequest) (entities.Estimate, error) {
	req.PartQuality = entities.NormalizePartQuality(string(req.PartQuality))
	key := req.Key()

	est, err := u.estimate(ctx, key)
	if err != nil {
		u.metrics.ObserveFailure(failureReason(err))
		if errors.Is(err, ErrNoPricingData) {
			logger.Info("[pricing][usecase] no pricing data", zap.String("key", key.String()))
		} else {
			logger.Warn("[pricing][usecase] estimate failed", zap.String("key", key.String()), zap.Error(err))
		}
		return entities.Estimate{}, err
	}

	confidence := 1.0
	if est.ConfidenceScore != nil {
		confidence = *est.ConfidenceScore
	}
	u.metrics.ObserveEstimate(est.Source, confidence)
	logger.Info("[pricing][usecase] estimate resolved",
		zap.String("key", key.String()),
		zap.String("source", string(est.Source)),
		zap.String("total_price", est.TotalPrice.StringFixed(2)),
		zap.Bool("is_estimated", est.IsEstimated),
		zap.Float64("confidence", confidence),
		zap.Uints("references", est.ReferenceModelIDs),
	)
	return est, nil
}

func (u *PriceEstimationUseCase) estimate(ctx context.Context, key entities.PriceKey) (entities.Estimate, error) {
	if key.DeviceModelID == 0 {
		return entities.Estimate{}, ErrInvalidDeviceModelID
	}
	if key.RepairTypeID == 0 {
		return entities.Estimate{}, ErrInvalidRepairTypeID
	}
	if !u.policy.Qualities.Valid(key.PartQuality) {
		return entities.Estimate{}, fmt.Errorf("%w: %q", ErrInvalidPartQuality, key.PartQuality)
	}

	target, err := u.repo.GetDeviceModel(ctx, key.DeviceModelID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if target.ID == 0 {
		return entities.Estimate{}, ErrDeviceModelNotFound
	}

	repairType, err := u.repo.GetRepairType(ctx, key.RepairTypeID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if repairType.ID == 0 {
		return entities.Estimate{}, ErrRepairTypeNotFound
	}

	exact, err := u.repo.GetExactPrice(ctx, key)
	if err != nil {
		return entities.Estimate{}, err
	}
	if exact.Found() {
		return fromExactPrice(exact), nil
	}

	if est, ok, err := u.qualityFallback(ctx, key); err != nil || ok {
		return est, err
	}

	if est, ok, err := u.analogyFallback(ctx, target, key); err != nil || ok {
		return est, err
	}

	return entities.Estimate{}, ErrNoPricingData
}

func fromExactPrice(p entities.Price) entities.Estimate {
	return entities.Estimate{
		Key:               p.Key,
		TotalPrice:        p.TotalPrice,
		PartsCost:         p.PartsCost,
		LaborCost:         p.LaborCost,
		IsEstimated:       p.IsEstimated,
		ConfidenceScore:   p.ConfidenceScore,
		Source:            entities.EstimateSourceExact,
		ReferenceModelIDs: []uint{p.Key.DeviceModelID},
	}
}

// qualityFallback scales the nearest known tier of the same device and repair.
// Authoritative rows are preferred as the source; a previously estimated row is used
// only when no authoritative tier exists, and its missing confidence carries over.
func (u *PriceEstimationUseCase) qualityFallback(ctx context.Context, key entities.PriceKey) (entities.Estimate, bool, error) {
	rows, err := u.repo.ListPricesForDeviceAcrossQualities(ctx, key.DeviceModelID, key.RepairTypeID)
	if err != nil {
		return entities.Estimate{}, false, err
	}

	authoritative := make(map[entities.PartQuality]entities.Price, len(rows))
	derived := make(map[entities.PartQuality]entities.Price, len(rows))
	for _, p := range rows {
		if p.Key.PartQuality == key.PartQuality || !u.policy.Qualities.Valid(p.Key.PartQuality) {
			continue
		}
		if p.Authoritative() {
			authoritative[p.Key.PartQuality] = p
		} else {
			derived[p.Key.PartQuality] = p
		}
	}

	src, ok := u.nearestKnownTier(key.PartQuality, authoritative)
	if !ok {
		if src, ok = u.nearestKnownTier(key.PartQuality, derived); !ok {
			return entities.Estimate{}, false, nil
		}
	}

	ratio := u.policy.Qualities.Ratio(src.Key.PartQuality, key.PartQuality)
	total := entities.RoundMoney(src.TotalPrice.Mul(ratio))
	// Estimated neighbours bound the result too; authoritative bounds are applied last so
	// they win when the two disagree.
	total = u.clampToKnownTiers(total, key.PartQuality, derived)
	total = u.clampToKnownTiers(total, key.PartQuality, authoritative)
	parts, labor := scaleBreakdown(src, total)

	steps := u.policy.Qualities.Steps(src.Key.PartQuality, key.PartQuality)
	confidence := u.policy.QualityBaseConfidence - u.policy.QualityStepPenalty*float64(steps)
	confidence = roundConfidence(math.Max(confidence, u.policy.QualityMinConfidence))
	if !src.Authoritative() {
		srcConfidence := 0.0
		if src.ConfidenceScore != nil {
			srcConfidence = *src.ConfidenceScore
		}
		confidence = roundConfidence(math.Max(confidence-(1-srcConfidence), u.policy.MinConfidence))
	}

	return entities.Estimate{
		Key:               key,
		TotalPrice:        total,
		PartsCost:         parts,
		LaborCost:         labor,
		IsEstimated:       true,
		ConfidenceScore:   &confidence,
		Source:            entities.EstimateSourceQualityFallback,
		ReferenceModelIDs: []uint{key.DeviceModelID},
	}, true, nil
}

func (u *PriceEstimationUseCase) nearestKnownTier(q entities.PartQuality, known map[entities.PartQuality]entities.Price) (entities.Price, bool) {
	for _, tier := range u.policy.Qualities.NearestTo(q) {
		if p, ok := known[tier.Quality]; ok {
			return p, true
		}
	}
	return entities.Price{}, false
}

// clampToKnownTiers keeps a derived price between the known prices of lower and higher
// tiers of the same pair. The lower bound wins when the known prices are inconsistent.
func (u *PriceEstimationUseCase) clampToKnownTiers(total decimal.Decimal, quality entities.PartQuality, known map[entities.PartQuality]entities.Price) decimal.Decimal {
	target, _ := u.policy.Qualities.Tier(quality)

	var lowerMax, higherMin *decimal.Decimal
	for q, p := range known {
		tier, _ := u.policy.Qualities.Tier(q)
		v := p.TotalPrice
		switch {
		case tier.Rank < target.Rank:
			if lowerMax == nil || v.GreaterThan(*lowerMax) {
				lowerMax = &v
			}
		case tier.Rank > target.Rank:
			if higherMin == nil || v.LessThan(*higherMin) {
				higherMin = &v
			}
		}
	}

	if lowerMax != nil && total.LessThan(*lowerMax) {
		total = *lowerMax
	}
	if higherMin != nil && total.GreaterThan(*higherMin) && (lowerMax == nil || !higherMin.LessThan(*lowerMax)) {
		total = *higherMin
	}
	return total
}

// analogyFallback borrows the price of the closest similar device, trying the requested
// tier first and then the other tiers nearest first.
func (u *PriceEstimationUseCase) analogyFallback(ctx context.Context, target entities.DeviceModel, key entities.PriceKey) (entities.Estimate, bool, error) {
	pool, err := u.repo.ListDeviceModelsByCategory(ctx, target.Category)
	if err != nil {
		return entities.Estimate{}, false, err
	}

	ranked := RankSimilarModels(target, pool, u.policy)
	if len(ranked) == 0 {
		return entities.Estimate{}, false, nil
	}

	ids := make([]uint, 0, len(ranked))
	for _, c := range ranked {
		ids = append(ids, c.Model.ID)
	}

	requested, _ := u.policy.Qualities.Tier(key.PartQuality)
	tiers := append([]entities.QualityTier{requested}, u.policy.Qualities.NearestTo(key.PartQuality)...)

	for _, tier := range tiers {
		rows, err := u.repo.ListPricesForModelsAndRepair(ctx, ids, key.RepairTypeID, tier.Quality)
		if err != nil {
			return entities.Estimate{}, false, err
		}

		byModel := make(map[uint]entities.Price, len(rows))
		for _, p := range rows {
			if p.Authoritative() && p.Key.PartQuality == tier.Quality {
				byModel[p.Key.DeviceModelID] = p
			}
		}

		candidate, ok := u.pickAnalogy(ranked, byModel)
		if !ok {
			continue
		}

		src := byModel[candidate.Model.ID]
		steps := u.policy.Qualities.Steps(tier.Quality, key.PartQuality)
		total := entities.RoundMoney(src.TotalPrice.Mul(u.policy.Qualities.Ratio(tier.Quality, key.PartQuality)))
		parts, labor := scaleBreakdown(src, total)
		confidence := u.analogyConfidence(candidate, steps)

		return entities.Estimate{
			Key:               key,
			TotalPrice:        total,
			PartsCost:         parts,
			LaborCost:         labor,
			IsEstimated:       true,
			ConfidenceScore:   &confidence,
			Source:            entities.EstimateSourceAnalogyFallback,
			ReferenceModelIDs: []uint{candidate.Model.ID},
		}, true, nil
	}

	return entities.Estimate{}, false, nil
}

// pickAnalogy returns the closest priced same-brand candidate within
// MaxSameBrandDistance, else the closest priced eligible candidate of any brand.
func (u *PriceEstimationUseCase) pickAnalogy(ranked []RankedModel, priced map[uint]entities.Price) (RankedModel, bool) {
	var fallback *RankedModel
	for i := range ranked {
		c := ranked[i]
		if _, ok := priced[c.Model.ID]; !ok {
			continue
		}
		if c.SameBrand && c.Distance <= u.policy.MaxSameBrandDistance {
			return c, true
		}
		if fallback == nil && (c.SameBrand || !u.policy.CrossBrandPrimaryOnly || c.Model.Brand.Primary) {
			fallback = &ranked[i]
		}
	}
	if fallback == nil {
		return RankedModel{}, false
	}
	return *fallback, true
}

func (u *PriceEstimationUseCase) analogyConfidence(c RankedModel, qualitySteps int) float64 {
	confidence := u.policy.AnalogyBaseConfidence -
		u.policy.TierConfidencePenalty*float64(c.TierGap) -
		u.policy.YearConfidencePenalty*float64(c.YearGap) -
		u.policy.CrossQualityConfidencePenalty*float64(qualitySteps)
	if !c.SameBrand {
		confidence -= u.policy.CrossBrandConfidencePenalty
	}
	return roundConfidence(math.Max(confidence, u.policy.MinConfidence))
}

// scaleBreakdown derives parts/labor for a computed total from the source row.
// Parts scale with the total; labor absorbs the rounding so parts + labor = total.
func scaleBreakdown(src entities.Price, total decimal.Decimal) (decimal.NullDecimal, decimal.NullDecimal) {
	if total.Equal(src.TotalPrice) {
		return src.PartsCost, src.LaborCost
	}
	if src.TotalPrice.IsZero() {
		return decimal.NullDecimal{}, decimal.NullDecimal{}
	}

	ratio := total.Div(src.TotalPrice)
	var parts, labor decimal.NullDecimal
	if src.PartsCost.Valid {
		parts = decimal.NewNullDecimal(entities.RoundMoney(src.PartsCost.Decimal.Mul(ratio)))
	}
	switch {
	case src.LaborCost.Valid && parts.Valid:
		rest := total.Sub(parts.Decimal)
		if rest.IsNegative() {
			rest = decimal.Zero
		}
		labor = decimal.NewNullDecimal(rest)
	case src.LaborCost.Valid:
		labor = decimal.NewNullDecimal(entities.RoundMoney(src.LaborCost.Decimal.Mul(ratio)))
	}
	return parts, labor
}

func roundConfidence(v float64) float64 {
	v = math.Max(0, math.Min(1, v))
	return math.Round(v*100) / 100
}

func (u *PriceEstimationUseCase) SaveEstimate(ctx context.Context, est entities.Estimate) (entities.SaveResult, error) {
	if est.Source == entities.EstimateSourceExact || !est.IsEstimated {
		u.metrics.ObservePersist(PersistOutcomeSkipped)
		return entities.SaveResult{Persisted: false, Reason: SaveReasonExactStored}, nil
	}
	if est.ConfidenceScore == nil {
		return entities.SaveResult{}, ErrNotAnEstimate
	}

	stored, persisted, err := u.repo.UpsertEstimatedPrice(ctx, est.ToEstimatedPrice(u.now()))
	if err != nil {
		u.metrics.ObservePersist(PersistOutcomeError)
		logger.Error("[pricing][usecase] persist estimate failed", zap.String("key", est.Key.String()), zap.Error(err))
		return entities.SaveResult{}, err
	}
	if !persisted {
		u.metrics.ObservePersist(PersistOutcomeConflict)
		logger.Info("[pricing][usecase] persist skipped, authoritative price exists", zap.String("key", est.Key.String()))
		return entities.SaveResult{Persisted: false, Conflict: true, Reason: SaveReasonAuthoritativeExists, Price: stored}, nil
	}

	u.metrics.ObservePersist(PersistOutcomePersisted)
	logger.Info("[pricing][usecase] estimate persisted", zap.String("key", est.Key.String()), zap.String("total_price", stored.TotalPrice.StringFixed(2)))
	return entities.SaveResult{Persisted: true, Price: stored}, nil
}

func (u *PriceEstimationUseCase) EstimateAndSave(ctx context.Context, req EstimateRequest) (entities.Estimate, entities.SaveResult, error) {
	est, err := u.Estimate(ctx, req)
	if err != nil {
		return entities.Estimate{}, entities.SaveResult{}, err
	}
	saved, err := u.SaveEstimate(ctx, est)
	if err != nil {
		return est, entities.SaveResult{}, err
	}
	return est, saved, nil
}

func (u *PriceEstimationUseCase) EstimateBatch(ctx context.Context, reqs []EstimateRequest, save bool) []BatchItemResult {
	results := make([]BatchItemResult, 0, len(reqs))
	for _, req := range reqs {
		item := BatchItemResult{Request: req}
		if save {
			est, saved, err := u.EstimateAndSave(ctx, req)
			item.Err = err
			if est.Source != "" {
				item.Estimate = &est
			}
			if err == nil {
				item.Save = &saved
			}
		} else {
			est, err := u.Estimate(ctx, req)
			item.Err = err
			if err == nil {
				item.Estimate = &est
			}
		}
		results = append(results, item)
	}
	return results
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrNoPricingData):
		return "no_pricing_data"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidPartQuality), errors.Is(err, ErrInvalidDeviceModelID), errors.Is(err, ErrInvalidRepairTypeID):
		return "invalid_request"
	default:
		return "storage_error"
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveEstimate(entities.EstimateSource, float64) {}
func (noopMetrics) ObserveFailure(string)                            {}
func (noopMetrics) ObservePersist(string)                            {}
