package roster

import (
	"fmt"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

// QuotaCriterion ensures every role holds exactly its quota.
// Selection fills roles slot by slot, so it never vetoes a pick.
type QuotaCriterion struct{}

func NewQuotaCriterion() *QuotaCriterion {
	return &QuotaCriterion{}
}

func (c *QuotaCriterion) Name() string {
	return "Quota"
}

func (c *QuotaCriterion) AllowsPick(picks []Candidate, candidate Candidate) bool {
	return true
}

func (c *QuotaCriterion) ValidateRoster(roster *Roster, vctx ValidationContext) []ValidationError {
	var errors []ValidationError

	counts := roster.CountByRole()
	for _, role := range model.AllRoles {
		want := vctx.Quota[role]
		if counts[role] != want {
			errors = append(errors, ValidationError{
				Role:          role,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("role %s has %d players, quota is %d", role, counts[role], want),
			})
		}
	}

	for role, count := range counts {
		if !role.IsValid() {
			errors = append(errors, ValidationError{
				Role:          role,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("%d players fill unknown role %q", count, role),
			})
		}
	}

	return errors
}
