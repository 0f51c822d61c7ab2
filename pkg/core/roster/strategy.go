package roster

import (
	"fmt"
	"math"
	"strings"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

// ShareTolerance is how far share midpoints may stray from 100%
const ShareTolerance = 5.0

const (
	defaultRookieMultiplier = 1.2
	defaultTopKMultiple     = 3
)

// Weights controls how much each signal contributes to a player's score
type Weights struct {
	Cost           float64 `yaml:"cost"`
	Appearances    float64 `yaml:"appearances"`
	FantasyAverage float64 `yaml:"fantasyAverage"`
	Rating         float64 `yaml:"rating"`
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	return w.Cost + w.Appearances + w.FantasyAverage + w.Rating
}

// ShareRange is the percent of the budget a role should consume
type ShareRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (s ShareRange) Midpoint() float64 {
	return (s.Min + s.Max) / 2
}

// Strategy is a named scoring and spending policy
type Strategy struct {
	Name        string
	Description string
	Weights     Weights

	// RookieMultiplier inflates the cost-based score of players with no history
	RookieMultiplier float64

	// Jitter adds up to this much uniform noise to every score
	Jitter float64

	// TopKMultiple sizes the sampling window at TopKMultiple × quota
	TopKMultiple int

	// Shares optionally caps each role's spend in percent of the budget
	Shares map[model.Role]ShareRange
}

func (s *Strategy) HasShares() bool {
	return len(s.Shares) > 0
}

// Validate checks the strategy is internally consistent
func (s *Strategy) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidStrategy)
	}

	w := s.Weights
	if w.Cost < 0 || w.Appearances < 0 || w.FantasyAverage < 0 || w.Rating < 0 {
		return fmt.Errorf("%w: %s has a negative weight", ErrInvalidStrategy, s.Name)
	}
	if w.Sum() <= 0 {
		return fmt.Errorf("%w: %s weights must sum to a positive value", ErrInvalidStrategy, s.Name)
	}
	if s.RookieMultiplier < 0 || s.Jitter < 0 {
		return fmt.Errorf("%w: %s rookie multiplier and jitter must not be negative", ErrInvalidStrategy, s.Name)
	}
	if s.TopKMultiple < 1 {
		return fmt.Errorf("%w: %s top-k multiple must be at least 1, got %d", ErrInvalidStrategy, s.Name, s.TopKMultiple)
	}

	if !s.HasShares() {
		return nil
	}

	var midpoints, mins, maxes float64
	for _, role := range model.AllRoles {
		share, ok := s.Shares[role]
		if !ok {
			return fmt.Errorf("%w: %s has no share range for role %s", ErrInvalidStrategy, s.Name, role)
		}
		if share.Min < 0 || share.Max > 100 || share.Min > share.Max {
			return fmt.Errorf("%w: %s share range for %s must satisfy 0 <= min <= max <= 100, got %.1f-%.1f",
				ErrInvalidStrategy, s.Name, role, share.Min, share.Max)
		}
		midpoints += share.Midpoint()
		mins += share.Min
		maxes += share.Max
	}
	for role := range s.Shares {
		if !role.IsValid() {
			return fmt.Errorf("%w: %s has a share range for unknown role %q", ErrInvalidStrategy, s.Name, role)
		}
	}

	if math.Abs(midpoints-100) > ShareTolerance {
		return fmt.Errorf("%w: %s share midpoints sum to %.1f%%, want 100%% ± %.0f",
			ErrInvalidStrategy, s.Name, midpoints, ShareTolerance)
	}
	if mins > 100 || maxes < 100 {
		return fmt.Errorf("%w: %s share ranges cannot cover 100%% (min sum %.1f, max sum %.1f)",
			ErrInvalidStrategy, s.Name, mins, maxes)
	}

	return nil
}

// Registry is a lookup table of strategies keyed by case-insensitive name
type Registry struct {
	strategies map[string]*Strategy
	order      []string
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]*Strategy)}
}

// DefaultRegistry returns a registry holding the built-in strategies
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, s := range BuiltinStrategies() {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// strategyKey folds case and separators so "top-player-oriented" finds TopPlayerOriented
func strategyKey(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// Register validates and adds a strategy, replacing any with the same name
func (r *Registry) Register(s Strategy) error {
	if s.RookieMultiplier == 0 {
		s.RookieMultiplier = defaultRookieMultiplier
	}
	if s.TopKMultiple == 0 {
		s.TopKMultiple = defaultTopKMultiple
	}
	if err := s.Validate(); err != nil {
		return err
	}

	key := strategyKey(s.Name)
	if _, exists := r.strategies[key]; !exists {
		r.order = append(r.order, key)
	}
	stored := s
	if s.Shares != nil {
		stored.Shares = make(map[model.Role]ShareRange, len(s.Shares))
		for role, share := range s.Shares {
			stored.Shares[role] = share
		}
	}
	r.strategies[key] = &stored
	return nil
}

// Lookup finds a strategy by name
func (r *Registry) Lookup(name string) (*Strategy, error) {
	s, ok := r.strategies[strategyKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownStrategy, name, strings.Join(r.Names(), ", "))
	}
	return s, nil
}

// Names returns strategy names in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, key := range r.order {
		names[i] = r.strategies[key].Name
	}
	return names
}

// All returns every strategy in registration order
func (r *Registry) All() []*Strategy {
	all := make([]*Strategy, len(r.order))
	for i, key := range r.order {
		all[i] = r.strategies[key]
	}
	return all
}

// BuiltinStrategies returns the strategies every registry starts with
func BuiltinStrategies() []Strategy {
	return []Strategy{
		{
			Name:         "Balanced",
			Description:  "Even weight on price, minutes and fantasy average",
			Weights:      Weights{Cost: 0.33, Appearances: 0.33, FantasyAverage: 0.34},
			TopKMultiple: 3,
		},
		{
			Name:         "TopPlayerOriented",
			Description:  "Spend on expensive attackers, save on goalkeepers and defence",
			Weights:      Weights{Cost: 0.5, FantasyAverage: 0.3, Rating: 0.2},
			TopKMultiple: 2,
			Shares: map[model.Role]ShareRange{
				model.RoleGoalkeeper: {Min: 5, Max: 9},
				model.RoleDefender:   {Min: 12, Max: 18},
				model.RoleMidfielder: {Min: 33, Max: 43},
				model.RoleForward:    {Min: 35, Max: 45},
			},
		},
		{
			Name:         "DiversifiedSquad",
			Description:  "Performance-led picks with noise, sampled from a wide window",
			Weights:      Weights{FantasyAverage: 0.5, Rating: 0.3, Appearances: 0.2},
			Jitter:       0.15,
			TopKMultiple: 4,
		},
		{
			Name:         "DefenseModifier",
			Description:  "Favour well-rated goalkeepers and defenders for the defence modifier",
			Weights:      Weights{Cost: 0.2, Appearances: 0.2, FantasyAverage: 0.2, Rating: 0.4},
			TopKMultiple: 3,
			Shares: map[model.Role]ShareRange{
				model.RoleGoalkeeper: {Min: 10, Max: 14},
				model.RoleDefender:   {Min: 28, Max: 36},
				model.RoleMidfielder: {Min: 28, Max: 34},
				model.RoleForward:    {Min: 21, Max: 29},
			},
		},
	}
}

// roleIndex returns the build position of a role
func roleIndex(role model.Role) int {
	for i, r := range model.AllRoles {
		if r == role {
			return i
		}
	}
	return len(model.AllRoles)
}
