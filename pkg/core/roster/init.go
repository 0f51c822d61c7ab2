package roster

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

const (
	DefaultStrategy    = "Balanced"
	DefaultMaxAttempts = 50
	MaxAttemptsLimit   = 1000
)

// GenerateConfig contains the configuration for a roster generation request
type GenerateConfig struct {
	// Players is the base catalog; it is never modified
	Players []model.Player

	// Registry resolves the strategy name (DefaultRegistry when nil)
	Registry *Registry
	Strategy string

	// Mode selects absolute credits or percent of budget
	Mode NormalizeMode

	// Budget is the target budget in credits, or the target percentage in (0, 100]
	// when Mode is ModePercentage
	Budget float64

	Reference Reference
	Baseline  float64

	// Quota is the headcount per role (DefaultQuota when nil)
	Quota model.RoleQuota

	// Band is the acceptance range (DefaultBand when zero)
	Band Band

	MaxAttempts   int
	SampleRetries int

	// Seed makes generation reproducible when set
	Seed *uint64

	MultiRoleMode MultiRoleMode

	// Criteria are checked in addition to the intrinsic rules
	Criteria []Criterion
}

// Generator holds the resolved state of a single generation request
type Generator struct {
	config   GenerateConfig
	strategy *Strategy
	criteria []Criterion
	rng      *rand.Rand
	pools    map[model.Role][]model.Player
	warnings []string
}

// InitGeneration validates the config, applies defaults and resolves the strategy
func InitGeneration(config GenerateConfig) (*Generator, error) {
	if config.Registry == nil {
		config.Registry = DefaultRegistry()
	}
	if config.Strategy == "" {
		config.Strategy = DefaultStrategy
	}
	if config.Mode == "" {
		config.Mode = ModeAbsolute
	}
	if config.Reference == "" {
		config.Reference = ReferenceBaseline
	}
	if config.Baseline <= 0 {
		config.Baseline = DefaultBaseline
	}
	if config.Quota == nil {
		config.Quota = model.DefaultQuota()
	}
	if config.Band == (Band{}) {
		config.Band = DefaultBand()
	}
	if config.MaxAttempts == 0 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	if config.SampleRetries <= 0 {
		config.SampleRetries = defaultSampleRetries
	}
	if config.MultiRoleMode == "" {
		config.MultiRoleMode = MultiRoleFirstMatch
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	strategy, err := config.Registry.Lookup(config.Strategy)
	if err != nil {
		return nil, err
	}

	criteria := append(IntrinsicCriteria(), config.Criteria...)

	return &Generator{
		config:   config,
		strategy: strategy,
		criteria: criteria,
		rng:      newRand(config.Seed),
	}, nil
}

func validateConfig(config GenerateConfig) error {
	if math.IsNaN(config.Budget) || math.IsInf(config.Budget, 0) || config.Budget <= 0 {
		return fmt.Errorf("%w: budget must be a positive number, got %v", ErrInvalidRequest, config.Budget)
	}

	switch config.Mode {
	case ModeAbsolute:
	case ModePercentage:
		if config.Budget > 100 {
			return fmt.Errorf("%w: target percentage must be in (0, 100], got %.2f", ErrInvalidRequest, config.Budget)
		}
	default:
		return fmt.Errorf("%w: unknown normalization mode %q", ErrInvalidRequest, config.Mode)
	}

	if config.Reference != ReferenceBaseline && config.Reference != ReferencePoolMax {
		return fmt.Errorf("%w: unknown cost reference %q", ErrInvalidRequest, config.Reference)
	}
	if config.MultiRoleMode != MultiRoleFirstMatch && config.MultiRoleMode != MultiRoleAny {
		return fmt.Errorf("%w: unknown multi-role mode %q", ErrInvalidRequest, config.MultiRoleMode)
	}
	if config.MaxAttempts < 1 || config.MaxAttempts > MaxAttemptsLimit {
		return fmt.Errorf("%w: max attempts must be between 1 and %d, got %d", ErrInvalidRequest, MaxAttemptsLimit, config.MaxAttempts)
	}
	if err := config.Quota.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return config.Band.Validate()
}

// newRand returns a seeded generator, or a randomly seeded one when seed is nil
func newRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// normalizeConfig maps the request onto normalizer parameters
func (g *Generator) normalizeConfig() NormalizeConfig {
	return NormalizeConfig{
		Mode:      g.config.Mode,
		Target:    g.config.Budget,
		Reference: g.config.Reference,
		Baseline:  g.config.Baseline,
	}
}

// budget is the target in normalized units
func (g *Generator) budget() float64 {
	return g.config.Budget
}

func (g *Generator) lower() float64 {
	return g.config.Band.Lower(g.budget())
}

func (g *Generator) upper() float64 {
	return g.config.Band.Upper(g.budget())
}

// Strategy returns the resolved strategy
func (g *Generator) Strategy() *Strategy {
	return g.strategy
}
