package roster

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

// attempt is the working state of one build pass
type attempt struct {
	roster *Roster
	ranked map[model.Role][]Candidate
}

// Generate builds a roster that fills every role quota and spends inside the band.
//
// Each attempt ranks and selects every role in build order, then repairs the total.
// The first roster inside the band is accepted. When attempts run out, the complete
// roster closest to the band is returned as best effort.
func Generate(ctx context.Context, config GenerateConfig) (*Outcome, error) {
	generator, err := InitGeneration(config)
	if err != nil {
		return nil, err
	}
	return generator.Run(ctx), nil
}

// Run executes the attempt loop and always produces an outcome
func (g *Generator) Run(ctx context.Context) *Outcome {
	outcome := &Outcome{
		ID:               uuid.NewString(),
		Budget:           g.budget(),
		Band:             g.config.Band,
		Strategy:         g.strategy.Name,
		Warnings:         []string{},
		ValidationErrors: []ValidationError{},
	}

	players, report, err := Normalize(g.config.Players, g.normalizeConfig())
	if err != nil {
		return g.buildOutcome(outcome, nil, StatusFailed, err)
	}
	if report.Floored > 0 {
		g.warnings = append(g.warnings, fmt.Sprintf("%d player cost(s) raised to the minimum cost", report.Floored))
	}

	g.pools = make(map[model.Role][]model.Player, len(model.AllRoles))
	for _, role := range model.AllRoles {
		g.pools[role] = RolePool(players, role, g.config.MultiRoleMode)
		if len(g.pools[role]) < g.config.Quota[role] {
			g.warnings = append(g.warnings, fmt.Sprintf("only %d eligible %s player(s) for a quota of %d",
				len(g.pools[role]), role, g.config.Quota[role]))
		}
	}

	var best *Roster
	var lastErr error
	cancelled := false

	for i := 1; i <= g.config.MaxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			cancelled = true
			break
		}
		outcome.Attempts = i

		a, err := g.buildAttempt()
		if err != nil {
			lastErr = err
			continue
		}

		if err := g.reconcile(a); err != nil {
			lastErr = err
			continue
		}

		if g.accepts(a.roster) {
			return g.buildOutcome(outcome, a.roster, StatusAccepted, nil)
		}

		if a.roster.IsComplete(g.config.Quota) && g.preferred(a.roster, best) {
			best = a.roster
		}
	}

	if best != nil {
		reason := fmt.Errorf("%w: closest total %.2f is outside [%.2f, %.2f]",
			ErrBudgetUnreachable, best.TotalCost(), g.lower(), g.upper())
		if cancelled {
			reason = errors.Join(reason, lastErr)
		}
		return g.buildOutcome(outcome, best, StatusBestEffort, reason)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no complete roster was assembled", ErrInsufficientCandidates)
	}
	return g.buildOutcome(outcome, nil, StatusFailed, lastErr)
}

// buildAttempt ranks and selects every role in build order
func (g *Generator) buildAttempt() (*attempt, error) {
	a := &attempt{
		roster: NewRoster(g.config.Quota),
		ranked: make(map[model.Role][]Candidate, len(model.AllRoles)),
	}
	taken := make(map[string]bool)

	for i, role := range model.AllRoles {
		ranked := RankCandidates(g.pools[role], role, g.strategy, g.rng)
		a.ranked[role] = ranked

		picks, err := SelectRole(ranked, SelectOptions{
			Role:          role,
			Need:          g.config.Quota[role],
			Ceiling:       g.roleCeiling(role, a.roster.TotalCost(), g.reserveAfter(i, taken)),
			TopKMultiple:  g.strategy.TopKMultiple,
			SampleRetries: g.config.SampleRetries,
			Rng:           g.rng,
			Picks:         a.roster.Picks,
			Taken:         taken,
			Criteria:      g.criteria,
		})
		if err != nil {
			return nil, err
		}

		for _, pick := range picks {
			taken[pick.Player.Key()] = true
			a.roster.Picks = append(a.roster.Picks, pick)
		}
	}

	return a, nil
}

// roleCeiling returns the most a role may spend given what is already spent and
// what the remaining roles need at minimum
func (g *Generator) roleCeiling(role model.Role, spent, reserve float64) float64 {
	ceiling := math.Max(g.budget(), g.upper()) - spent - reserve

	if share, ok := g.strategy.Shares[role]; ok {
		ceiling = math.Min(ceiling, g.budget()*share.Max/100)
	}
	return ceiling
}

// reserveAfter returns the cheapest possible completion of the roles after index i.
// A role that cannot be completed at all contributes nothing; it fails on its own turn.
func (g *Generator) reserveAfter(i int, taken map[string]bool) float64 {
	reserve := 0.0
	for _, role := range model.AllRoles[i+1:] {
		var available []Candidate
		for _, p := range g.pools[role] {
			if !taken[p.Key()] {
				available = append(available, Candidate{Player: p, Role: role})
			}
		}
		cheapest := cheapestSum(available, g.config.Quota[role], -1, nil)
		if !math.IsInf(cheapest, 1) {
			reserve += cheapest
		}
	}
	return reserve
}

// accepts returns true if the roster is complete and breaks no blocking rule
func (g *Generator) accepts(r *Roster) bool {
	if !r.IsComplete(g.config.Quota) {
		return false
	}
	return !HasBlockingErrors(ValidateRoster(r, g.validationContext(), g.criteria))
}

// preferred returns true if candidate is a better fallback than current:
// closer to the band, then higher score
func (g *Generator) preferred(candidate, current *Roster) bool {
	if current == nil {
		return true
	}
	dCandidate := g.config.Band.Distance(candidate.TotalCost(), g.budget())
	dCurrent := g.config.Band.Distance(current.TotalCost(), g.budget())
	if math.Abs(dCandidate-dCurrent) > costEpsilon {
		return dCandidate < dCurrent
	}
	return candidate.Score() > current.Score()
}

func (g *Generator) validationContext() ValidationContext {
	return ValidationContext{
		Budget:   g.budget(),
		Band:     g.config.Band,
		Quota:    g.config.Quota,
		Strategy: g.strategy,
	}
}

// buildOutcome creates the final outcome report
func (g *Generator) buildOutcome(outcome *Outcome, roster *Roster, status Status, reason error) *Outcome {
	outcome.Status = status
	outcome.Reason = reason
	outcome.Warnings = append(outcome.Warnings, g.warnings...)

	if roster == nil {
		return outcome
	}

	outcome.Roster = &Roster{Picks: roster.Sorted()}
	outcome.TotalCost = decimal.NewFromFloat(roster.TotalCost()).Round(2).InexactFloat64()
	outcome.ValidationErrors = append(outcome.ValidationErrors,
		ValidateRoster(outcome.Roster, g.validationContext(), g.criteria)...)

	return outcome
}
