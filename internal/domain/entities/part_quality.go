package entities

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// PartQuality is a quality tier of replacement parts (e.g. aftermarket vs. original).
//
// Domain notes:
//   - Tiers form a strict total order (see QualityTable). A higher tier never prices
//     below a lower tier for the same device/repair pair.
//   - The set of tiers is configuration, not code: new tiers are added to the table.
type PartQuality string

const (
	PartQualityStandard PartQuality = "STANDARD"
	PartQualityPremium  PartQuality = "PREMIUM"
	PartQualityOEM      PartQuality = "OEM"
)

var (
	ErrEmptyQualityTable        = errors.New("quality table must contain at least one tier")
	ErrDuplicateQualityTier     = errors.New("duplicate quality tier")
	ErrInvalidQualityMultiplier = errors.New("quality multiplier must be positive")
	ErrNonMonotonicQuality      = errors.New("quality multipliers must be non-decreasing by tier")
)

// NormalizePartQuality upper-cases and trims user input. It does not validate.
func NormalizePartQuality(raw string) PartQuality {
	return PartQuality(strings.ToUpper(strings.TrimSpace(raw)))
}

// QualityTier is one entry of the ordered tier enumeration.
type QualityTier struct {
	Quality    PartQuality
	Rank       int
	Multiplier decimal.Decimal
}

// QualityTable is the ordered enumeration of part quality tiers and their price
// multipliers relative to each other. Rank is the position in the table (0 = lowest).
type QualityTable struct {
	tiers []QualityTier
	index map[PartQuality]int
}

// NewQualityTable builds a table from tiers listed lowest first. Ranks are assigned
// from the list position; any Rank set by the caller is ignored.
func NewQualityTable(tiers []QualityTier) (QualityTable, error) {
	if len(tiers) == 0 {
		return QualityTable{}, ErrEmptyQualityTable
	}

	out := make([]QualityTier, 0, len(tiers))
	index := make(map[PartQuality]int, len(tiers))
	for i, t := range tiers {
		q := NormalizePartQuality(string(t.Quality))
		if q == "" {
			return QualityTable{}, fmt.Errorf("quality tier at position %d has no name", i)
		}
		if _, dup := index[q]; dup {
			return QualityTable{}, fmt.Errorf("%w: %s", ErrDuplicateQualityTier, q)
		}
		if !t.Multiplier.IsPositive() {
			return QualityTable{}, fmt.Errorf("%w: %s=%s", ErrInvalidQualityMultiplier, q, t.Multiplier)
		}
		if i > 0 && t.Multiplier.LessThan(out[i-1].Multiplier) {
			return QualityTable{}, fmt.Errorf("%w: %s=%s below %s=%s", ErrNonMonotonicQuality, q, t.Multiplier, out[i-1].Quality, out[i-1].Multiplier)
		}
		index[q] = i
		out = append(out, QualityTier{Quality: q, Rank: i, Multiplier: t.Multiplier})
	}

	return QualityTable{tiers: out, index: index}, nil
}

// DefaultQualityTable returns the built-in STANDARD < PREMIUM < OEM table.
func DefaultQualityTable() QualityTable {
	t, err := NewQualityTable([]QualityTier{
		{Quality: PartQualityStandard, Multiplier: decimal.RequireFromString("1.00")},
		{Quality: PartQualityPremium, Multiplier: decimal.RequireFromString("1.25")},
		{Quality: PartQualityOEM, Multiplier: decimal.RequireFromString("1.60")},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// ParseQualityMultipliers parses "STANDARD:1.0,PREMIUM:1.25,OEM:1.6" (lowest tier first).
func ParseQualityMultipliers(raw string) ([]QualityTier, error) {
	var tiers []QualityTier
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid quality multiplier entry %q (want TIER:MULTIPLIER)", part)
		}
		m, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid multiplier for %s: %w", strings.TrimSpace(name), err)
		}
		tiers = append(tiers, QualityTier{Quality: NormalizePartQuality(name), Multiplier: m})
	}
	if len(tiers) == 0 {
		return nil, ErrEmptyQualityTable
	}
	return tiers, nil
}

func (t QualityTable) Tier(q PartQuality) (QualityTier, bool) {
	i, ok := t.index[q]
	if !ok {
		return QualityTier{}, false
	}
	return t.tiers[i], true
}

func (t QualityTable) Valid(q PartQuality) bool {
	_, ok := t.index[q]
	return ok
}

func (t QualityTable) Tiers() []QualityTier {
	out := make([]QualityTier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// Ratio returns multiplier(to) / multiplier(from). Both tiers must exist.
func (t QualityTable) Ratio(from, to PartQuality) decimal.Decimal {
	f, _ := t.Tier(from)
	g, _ := t.Tier(to)
	if f.Multiplier.IsZero() {
		return decimal.Zero
	}
	return g.Multiplier.Div(f.Multiplier)
}

// Steps returns the absolute rank distance between two tiers.
func (t QualityTable) Steps(a, b PartQuality) int {
	ta, _ := t.Tier(a)
	tb, _ := t.Tier(b)
	d := ta.Rank - tb.Rank
	if d < 0 {
		return -d
	}
	return d
}

// NearestTo returns every tier except q, nearest rank first; equal distance prefers the
// lower tier.
func (t QualityTable) NearestTo(q PartQuality) []QualityTier {
	origin, ok := t.Tier(q)
	if !ok {
		return nil
	}
	out := make([]QualityTier, 0, len(t.tiers)-1)
	for _, tier := range t.tiers {
		if tier.Quality != q {
			out = append(out, tier)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := absInt(out[i].Rank-origin.Rank), absInt(out[j].Rank-origin.Rank)
		if di != dj {
			return di < dj
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
