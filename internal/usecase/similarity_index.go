package usecase

import (
	"sort"

	"repair_pricing/internal/domain/entities"
)

// unknownMonthGap ranks candidates without a release month after those with one.
const unknownMonthGap = 12

// RankedModel is a similarity candidate and its distance to the target model.
type RankedModel struct {
	Model     entities.DeviceModel
	Distance  float64
	SameBrand bool
	TierGap   int
	YearGap   int
	MonthGap  int
}

// RankSimilarModels orders pool by structural closeness to target.
//
// The target itself and models of another category are excluded. Order is ascending
// distance, then smaller release-month gap, then more recent release year, then lower id.
// The result is recomputed on every call; an empty result means no candidate exists.
func RankSimilarModels(target entities.DeviceModel, pool []entities.DeviceModel, policy EstimationPolicy) []RankedModel {
	ranked := make([]RankedModel, 0, len(pool))
	for _, m := range pool {
		if m.ID == target.ID || m.Category != target.Category {
			continue
		}

		c := RankedModel{
			Model:     m,
			SameBrand: m.Brand.ID == target.Brand.ID,
			TierGap:   absInt(m.TierLevel - target.TierLevel),
			YearGap:   absInt(m.ReleaseYear - target.ReleaseYear),
			MonthGap:  unknownMonthGap,
		}
		if m.HasReleaseMonth() && target.HasReleaseMonth() {
			c.MonthGap = absInt(m.ReleaseMonth - target.ReleaseMonth)
		}

		c.Distance = policy.TierWeight*float64(c.TierGap) + policy.YearWeight*float64(c.YearGap)
		if !c.SameBrand {
			c.Distance += policy.CrossBrandDistance
		}
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.MonthGap != b.MonthGap {
			return a.MonthGap < b.MonthGap
		}
		if a.Model.ReleaseYear != b.Model.ReleaseYear {
			return a.Model.ReleaseYear > b.Model.ReleaseYear
		}
		return a.Model.ID < b.Model.ID
	})

	return ranked
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
