package roster

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

// NormalizeMode selects the unit normalized costs are expressed in
type NormalizeMode string

const (
	// ModeAbsolute expresses costs in credits of the target budget
	ModeAbsolute NormalizeMode = "absolute"

	// ModePercentage expresses costs as percent of the whole budget
	ModePercentage NormalizeMode = "percentage"
)

// Reference selects what original costs are scaled against
type Reference string

const (
	// ReferenceBaseline scales against the fixed historical budget
	ReferenceBaseline Reference = "baseline"

	// ReferencePoolMax scales against the most expensive player in the pool
	ReferencePoolMax Reference = "pool_max"
)

const (
	DefaultBaseline          = 500.0
	DefaultMinCost           = 1.0
	DefaultMinPercentageCost = 0.01
)

// NormalizeConfig holds the normalization parameters
type NormalizeConfig struct {
	Mode      NormalizeMode
	Target    float64
	Reference Reference
	Baseline  float64
	MinCost   float64
}

func (c NormalizeConfig) withDefaults() NormalizeConfig {
	if c.Mode == "" {
		c.Mode = ModeAbsolute
	}
	if c.Reference == "" {
		c.Reference = ReferenceBaseline
	}
	if c.Baseline <= 0 {
		c.Baseline = DefaultBaseline
	}
	if c.MinCost <= 0 {
		if c.Mode == ModePercentage {
			c.MinCost = DefaultMinPercentageCost
		} else {
			c.MinCost = DefaultMinCost
		}
	}
	if c.Mode == ModePercentage {
		c.Target = 100
	}
	return c
}

// NormalizeReport describes what normalization did
type NormalizeReport struct {
	// ReferenceValue is the original cost mapped onto the target
	ReferenceValue float64

	// Scale is the factor applied to every original cost
	Scale float64

	// Floored counts players whose scaled cost was raised to the minimum
	Floored int
}

// Normalize returns a copy of players with costs rescaled onto the target.
// The input slice is never modified, so normalizing the same catalog twice with the
// same config yields identical costs. Rounding to cents and flooring are both
// monotonic, so the relative cost order of players is preserved.
func Normalize(players []model.Player, cfg NormalizeConfig) ([]model.Player, NormalizeReport, error) {
	cfg = cfg.withDefaults()

	normalized := make([]model.Player, len(players))
	maxCost := 0.0
	for i, p := range players {
		normalized[i] = p.Clone()
		if p.Cost > maxCost {
			maxCost = p.Cost
		}
	}

	if maxCost <= 0 {
		return normalized, NormalizeReport{}, ErrEmptyOrDegenerateCatalog
	}
	if cfg.Target <= 0 {
		return normalized, NormalizeReport{}, fmt.Errorf("%w: normalization target must be positive, got %.2f", ErrInvalidRequest, cfg.Target)
	}

	reference := cfg.Baseline
	if cfg.Reference == ReferencePoolMax {
		reference = maxCost
	}

	scale := decimal.NewFromFloat(cfg.Target).Div(decimal.NewFromFloat(reference))
	minCost := decimal.NewFromFloat(cfg.MinCost)

	report := NormalizeReport{ReferenceValue: reference, Scale: scale.InexactFloat64()}
	for i := range normalized {
		cost := decimal.NewFromFloat(normalized[i].Cost).Mul(scale).Round(2)
		if cost.LessThan(minCost) {
			cost = minCost
			report.Floored++
		}
		normalized[i].Cost = cost.InexactFloat64()
	}

	return normalized, report, nil
}
