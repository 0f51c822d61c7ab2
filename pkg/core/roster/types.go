package roster

import (
	"fmt"
	"math"
	"sort"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

// costEpsilon absorbs float noise when comparing totals against band bounds
const costEpsilon = 1e-9

// Candidate is a player ranked for a single role slot
type Candidate struct {
	Player model.Player

	// Role is the slot the player fills (a multi-role player fills exactly one)
	Role model.Role

	// Score is the strategy score computed by the ranker for this attempt
	Score float64

	// tiebreak orders candidates with equal scores
	tiebreak float64
}

// Cost returns the request-scoped (normalized) cost of the candidate
func (c Candidate) Cost() float64 {
	return c.Player.Cost
}

// Roster is an ordered collection of picks, grouped by role
type Roster struct {
	Picks []Candidate
}

// NewRoster creates an empty roster with capacity for the given quota
func NewRoster(quota model.RoleQuota) *Roster {
	return &Roster{Picks: make([]Candidate, 0, quota.Size())}
}

// Size returns the number of picks
func (r *Roster) Size() int {
	return len(r.Picks)
}

// TotalCost returns the summed cost of all picks
func (r *Roster) TotalCost() float64 {
	total := 0.0
	for _, pick := range r.Picks {
		total += pick.Cost()
	}
	return total
}

// Score returns the summed ranking score of all picks
func (r *Roster) Score() float64 {
	total := 0.0
	for _, pick := range r.Picks {
		total += pick.Score
	}
	return total
}

// CountByRole returns the number of picks filling each role slot
func (r *Roster) CountByRole() map[model.Role]int {
	counts := make(map[model.Role]int)
	for _, pick := range r.Picks {
		counts[pick.Role]++
	}
	return counts
}

// CostByRole returns the summed cost per role slot
func (r *Roster) CostByRole() map[model.Role]float64 {
	costs := make(map[model.Role]float64)
	for _, pick := range r.Picks {
		costs[pick.Role] += pick.Cost()
	}
	return costs
}

// IsComplete returns true if every role has exactly its quota and nothing else
func (r *Roster) IsComplete(quota model.RoleQuota) bool {
	if len(r.Picks) != quota.Size() {
		return false
	}
	counts := r.CountByRole()
	for role, want := range quota {
		if counts[role] != want {
			return false
		}
	}
	return true
}

// Contains returns true if the player with the given key is already picked
func (r *Roster) Contains(key string) bool {
	for _, pick := range r.Picks {
		if pick.Player.Key() == key {
			return true
		}
	}
	return false
}

// Clone returns a copy of the roster that can be modified independently
func (r *Roster) Clone() *Roster {
	picks := make([]Candidate, len(r.Picks))
	copy(picks, r.Picks)
	return &Roster{Picks: picks}
}

// Sorted returns the picks ordered by role, then cost descending, then name
func (r *Roster) Sorted() []Candidate {
	sorted := make([]Candidate, len(r.Picks))
	copy(sorted, r.Picks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ri, rj := roleIndex(sorted[i].Role), roleIndex(sorted[j].Role); ri != rj {
			return ri < rj
		}
		if sorted[i].Cost() != sorted[j].Cost() {
			return sorted[i].Cost() > sorted[j].Cost()
		}
		return sorted[i].Player.Name < sorted[j].Player.Name
	})
	return sorted
}

// without returns the picks with the pick at index i removed
func (r *Roster) without(i int) []Candidate {
	picks := make([]Candidate, 0, len(r.Picks)-1)
	picks = append(picks, r.Picks[:i]...)
	return append(picks, r.Picks[i+1:]...)
}

// Band is the acceptance range for total cost, in percent of the budget
type Band struct {
	MinPct float64
	MaxPct float64
}

// DefaultBand accepts rosters spending 95-100% of the budget
func DefaultBand() Band {
	return Band{MinPct: 95, MaxPct: 100}
}

// Lower returns the minimum acceptable total cost
func (b Band) Lower(budget float64) float64 {
	return budget * b.MinPct / 100
}

// Upper returns the maximum acceptable total cost
func (b Band) Upper(budget float64) float64 {
	return budget * b.MaxPct / 100
}

// Contains returns true if total lies within the band
func (b Band) Contains(total, budget float64) bool {
	return total >= b.Lower(budget)-costEpsilon && total <= b.Upper(budget)+costEpsilon
}

// Distance returns how far total lies outside the band (0 inside)
func (b Band) Distance(total, budget float64) float64 {
	if total < b.Lower(budget) {
		return b.Lower(budget) - total
	}
	if total > b.Upper(budget) {
		return total - b.Upper(budget)
	}
	return 0
}

// Validate checks the band is a sensible percentage range
func (b Band) Validate() error {
	if b.MinPct < 0 || b.MaxPct <= 0 || b.MinPct > b.MaxPct {
		return fmt.Errorf("%w: band [%.2f, %.2f] is not a valid percentage range", ErrInvalidRequest, b.MinPct, b.MaxPct)
	}
	if math.IsNaN(b.MinPct) || math.IsNaN(b.MaxPct) {
		return fmt.Errorf("%w: band bounds must be numbers", ErrInvalidRequest)
	}
	return nil
}

// Status classifies a generation outcome
type Status string

const (
	// StatusAccepted means a complete roster landed inside the band
	StatusAccepted Status = "Accepted"

	// StatusBestEffort means attempts were exhausted but a complete roster exists outside the band
	StatusBestEffort Status = "BestEffort"

	// StatusFailed means no complete roster was ever assembled
	StatusFailed Status = "Failed"
)

// Outcome represents the result of a roster generation request
type Outcome struct {
	// ID identifies this generation request
	ID string

	Status Status

	// Roster is the accepted or best-effort roster (nil when Failed)
	Roster *Roster

	TotalCost float64
	Budget    float64
	Band      Band
	Strategy  string

	// Attempts is the number of build passes that ran
	Attempts int

	// Reason explains a non-accepted outcome (nil when Accepted)
	Reason error

	// Warnings are non-fatal notes, e.g. from normalization
	Warnings []string

	// ValidationErrors lists every rule the final roster breaks
	ValidationErrors []ValidationError
}

// Succeeded returns true if the roster was accepted
func (o *Outcome) Succeeded() bool {
	return o.Status == StatusAccepted
}

// SpentPct returns the share of the budget the roster spends
func (o *Outcome) SpentPct() float64 {
	if o.Budget <= 0 {
		return 0
	}
	return o.TotalCost / o.Budget * 100
}

// Summary returns a human-readable classification of the outcome
func (o *Outcome) Summary() string {
	switch o.Status {
	case StatusAccepted:
		return fmt.Sprintf("accepted after %d attempt(s): %.2f of %.2f (%.1f%%)", o.Attempts, o.TotalCost, o.Budget, o.SpentPct())
	case StatusBestEffort:
		return fmt.Sprintf("best effort after %d attempt(s): %.2f of %.2f (%.1f%%) is outside [%.0f%%, %.0f%%]",
			o.Attempts, o.TotalCost, o.Budget, o.SpentPct(), o.Band.MinPct, o.Band.MaxPct)
	default:
		return fmt.Sprintf("failed after %d attempt(s): %v", o.Attempts, o.Reason)
	}
}
