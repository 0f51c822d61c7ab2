package roster

import "fmt"

// BudgetBandCriterion ensures the total cost lies inside the acceptance band.
// The band is a whole-roster property, so it is enforced by the reconciler rather
// than by vetoing single picks.
type BudgetBandCriterion struct{}

func NewBudgetBandCriterion() *BudgetBandCriterion {
	return &BudgetBandCriterion{}
}

func (c *BudgetBandCriterion) Name() string {
	return "BudgetBand"
}

func (c *BudgetBandCriterion) AllowsPick(picks []Candidate, candidate Candidate) bool {
	return true
}

func (c *BudgetBandCriterion) ValidateRoster(roster *Roster, vctx ValidationContext) []ValidationError {
	total := roster.TotalCost()
	if vctx.Band.Contains(total, vctx.Budget) {
		return nil
	}

	return []ValidationError{{
		CriterionName: c.Name(),
		Description: fmt.Sprintf("total cost %.2f is outside [%.2f, %.2f]",
			total, vctx.Band.Lower(vctx.Budget), vctx.Band.Upper(vctx.Budget)),
	}}
}
