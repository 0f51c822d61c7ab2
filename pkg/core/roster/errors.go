package roster

import (
	"errors"
	"fmt"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

var (
	ErrEmptyOrDegenerateCatalog = errors.New("empty or degenerate catalog")
	ErrInsufficientCandidates   = errors.New("insufficient candidates")
	ErrUnknownStrategy          = errors.New("unknown strategy")
	ErrInvalidStrategy          = errors.New("invalid strategy")
	ErrBudgetUnreachable        = errors.New("budget unreachable")
	ErrInvalidRequest           = errors.New("invalid request")
)

// InsufficientCandidatesError reports a role that could not be filled within its ceiling
type InsufficientCandidatesError struct {
	Role      model.Role
	Need      int
	Available int
	Ceiling   float64
}

func (e *InsufficientCandidatesError) Error() string {
	return fmt.Sprintf("insufficient candidates for %s: need %d, found %d affordable within %.2f",
		e.Role, e.Need, e.Available, e.Ceiling)
}

func (e *InsufficientCandidatesError) Unwrap() error {
	return ErrInsufficientCandidates
}
