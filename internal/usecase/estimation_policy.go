package usecase

import "repair_pricing/internal/domain/entities"

// EstimationPolicy holds every tunable constant of the estimator in one place.
//
// Distance (similarity ranking):
//
//	distance = CrossBrandDistance (brands differ) + TierWeight*|Δtier| + YearWeight*|Δyear|
//
// Confidence:
//   - quality fallback: QualityBaseConfidence - QualityStepPenalty*steps, floored at
//     QualityMinConfidence.
//   - analogy fallback: AnalogyBaseConfidence - TierConfidencePenalty*|Δtier|
//     - YearConfidencePenalty*|Δyear| - CrossBrandConfidencePenalty (brands differ)
//     - CrossQualityConfidencePenalty*steps, floored at MinConfidence.
type EstimationPolicy struct {
	CrossBrandDistance    float64
	TierWeight            float64
	YearWeight            float64
	MaxSameBrandDistance  float64
	CrossBrandPrimaryOnly bool

	QualityBaseConfidence float64
	QualityStepPenalty    float64
	QualityMinConfidence  float64

	AnalogyBaseConfidence         float64
	TierConfidencePenalty         float64
	YearConfidencePenalty         float64
	CrossBrandConfidencePenalty   float64
	CrossQualityConfidencePenalty float64
	MinConfidence                 float64

	Qualities entities.QualityTable
}

func DefaultEstimationPolicy() EstimationPolicy {
	return EstimationPolicy{
		CrossBrandDistance:   100,
		TierWeight:           3,
		YearWeight:           1,
		MaxSameBrandDistance: 12,

		QualityBaseConfidence: 0.90,
		QualityStepPenalty:    0.025,
		QualityMinConfidence:  0.80,

		AnalogyBaseConfidence:         0.60,
		TierConfidencePenalty:         0.10,
		YearConfidencePenalty:         0.05,
		CrossBrandConfidencePenalty:   0.15,
		CrossQualityConfidencePenalty: 0.10,
		MinConfidence:                 0.20,

		Qualities: entities.DefaultQualityTable(),
	}
}
