package roster

import (
	"fmt"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

// RoleShareCriterion reports roles whose spend falls outside the strategy's share range.
//
// Shares are a spending guide, not a hard rule:
//   - the selector already caps each role at its maximum share
//   - budget repair can push a role past either bound, which is reported as advisory
//   - strategies without shares produce no errors
type RoleShareCriterion struct{}

func NewRoleShareCriterion() *RoleShareCriterion {
	return &RoleShareCriterion{}
}

func (c *RoleShareCriterion) Name() string {
	return "RoleShare"
}

func (c *RoleShareCriterion) AllowsPick(picks []Candidate, candidate Candidate) bool {
	return true
}

func (c *RoleShareCriterion) ValidateRoster(roster *Roster, vctx ValidationContext) []ValidationError {
	if vctx.Strategy == nil || !vctx.Strategy.HasShares() || vctx.Budget <= 0 {
		return nil
	}

	var errors []ValidationError

	costs := roster.CostByRole()
	for _, role := range model.AllRoles {
		share, ok := vctx.Strategy.Shares[role]
		if !ok {
			continue
		}
		pct := costs[role] / vctx.Budget * 100
		if pct < share.Min || pct > share.Max {
			errors = append(errors, ValidationError{
				Role:          role,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("role %s spends %.1f%% of budget, strategy range is %.0f-%.0f%%", role, pct, share.Min, share.Max),
				Advisory:      true,
			})
		}
	}

	return errors
}
