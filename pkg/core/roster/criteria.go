package roster

import "github.com/fantaelite/draftmaster/pkg/core/model"

// ValidationError represents a rule a roster breaks
type ValidationError struct {
	Role          model.Role
	PlayerName    string
	CriterionName string
	Description   string

	// Advisory errors are reported but do not block acceptance
	Advisory bool
}

// ValidationContext carries the request parameters a criterion validates against
type ValidationContext struct {
	Budget   float64
	Band     Band
	Quota    model.RoleQuota
	Strategy *Strategy
}

// Criterion defines the interface for pluggable roster rules
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// AllowsPick determines if a candidate may join the picks made so far.
	// This acts as a veto - if ANY criterion returns false, the candidate is skipped
	// during selection and repair.
	AllowsPick(picks []Candidate, candidate Candidate) bool

	// ValidateRoster checks the final roster meets this criterion's requirements.
	// Returns a slice of validation errors (empty if all valid).
	ValidateRoster(roster *Roster, vctx ValidationContext) []ValidationError
}

// IntrinsicCriteria returns the rules every generated roster is checked against
func IntrinsicCriteria() []Criterion {
	return []Criterion{
		NewQuotaCriterion(),
		NewUniquePlayersCriterion(),
		NewBudgetBandCriterion(),
	}
}

// allowsPick returns true if no criterion vetoes the candidate
func allowsPick(criteria []Criterion, picks []Candidate, candidate Candidate) bool {
	for _, criterion := range criteria {
		if !criterion.AllowsPick(picks, candidate) {
			return false
		}
	}
	return true
}
