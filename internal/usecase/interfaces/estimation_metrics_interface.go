package interfaces

import "repair_pricing/internal/domain/entities"

// IEstimationMetrics receives estimator outcomes (Prometheus in production).

type IEstimationMetrics interface {
	ObserveEstimate(source entities.EstimateSource, confidence float64)
	ObserveFailure(reason string)
	ObservePersist(outcome string)
}
