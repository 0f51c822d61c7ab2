package roster

import "github.com/fantaelite/draftmaster/pkg/core/model"

// reconcile repairs an assembled roster towards the band.
// Over budget it trims and refills; under budget it upgrades. The roster keeps its quota
// throughout, so a refill that cannot complete fails the attempt.
func (g *Generator) reconcile(a *attempt) error {
	if a.roster.TotalCost() > g.upper()+costEpsilon {
		if err := g.trimAndRefill(a); err != nil {
			return err
		}
	}

	if a.roster.TotalCost() < g.lower()-costEpsilon {
		g.upgrade(a)
	}

	return nil
}

// trimAndRefill removes the most expensive picks until the roster fits under the upper
// bound, then fills each opened slot with the cheapest remaining player of its role
func (g *Generator) trimAndRefill(a *attempt) error {
	opened := make(map[model.Role]int)
	trimmed := make(map[string]bool)

	for len(a.roster.Picks) > 0 && a.roster.TotalCost() > g.upper()+costEpsilon {
		idx := highestCostIndex(a.roster.Picks)
		pick := a.roster.Picks[idx]
		opened[pick.Role]++
		trimmed[pick.Player.Key()] = true
		a.roster.Picks = a.roster.without(idx)
	}

	for _, role := range model.AllRoles {
		for n := 0; n < opened[role]; n++ {
			room := g.upper() - a.roster.TotalCost()
			replacement, ok := g.cheapestReplacement(a, role, room, trimmed)
			if !ok {
				return &InsufficientCandidatesError{
					Role:    role,
					Need:    opened[role] - n,
					Ceiling: room,
				}
			}
			a.roster.Picks = append(a.roster.Picks, replacement)
		}
	}

	return nil
}

// cheapestReplacement finds the cheapest allowed candidate for a role that fits in room.
// Equal costs resolve to the better-ranked candidate.
func (g *Generator) cheapestReplacement(a *attempt, role model.Role, room float64, excluded map[string]bool) (Candidate, bool) {
	var best Candidate
	found := false

	for _, c := range a.ranked[role] {
		if excluded[c.Player.Key()] || c.Cost() > room+costEpsilon {
			continue
		}
		if found && c.Cost() >= best.Cost() {
			continue
		}
		if !allowsPick(g.criteria, a.roster.Picks, c) {
			continue
		}
		best = c
		found = true
	}

	return best, found
}

// upgrade greedily swaps picks for pricier same-role players until the lower bound is met.
// It swaps rather than appending extra players because a complete roster has no free slots.
//
// Each round evaluates every pick against every remaining player of its slot's role:
//   - swaps that reach the band win, preferring the largest score gain
//   - otherwise the swap that raises the total the most is applied
//
// The total rises strictly every round, so the loop terminates.
func (g *Generator) upgrade(a *attempt) {
	maxRounds := a.roster.Size() * 4

	for range maxRounds {
		total := a.roster.TotalCost()
		if total >= g.lower()-costEpsilon {
			return
		}

		bestIdx := -1
		var best Candidate
		bestTotal := total
		bestGain := 0.0
		bestReaches := false

		for i, pick := range a.roster.Picks {
			others := a.roster.without(i)

			for _, c := range a.ranked[pick.Role] {
				if c.Cost() <= pick.Cost() {
					continue
				}
				newTotal := total - pick.Cost() + c.Cost()
				if newTotal > g.upper()+costEpsilon {
					continue
				}
				if !allowsPick(g.criteria, others, c) {
					continue
				}

				reaches := newTotal >= g.lower()-costEpsilon
				gain := c.Score - pick.Score

				better := false
				switch {
				case reaches && !bestReaches:
					better = true
				case reaches && bestReaches:
					better = gain > bestGain
				case !reaches && !bestReaches:
					better = newTotal > bestTotal
				}

				if better {
					bestIdx = i
					best = c
					bestTotal = newTotal
					bestGain = gain
					bestReaches = reaches
				}
			}
		}

		if bestIdx < 0 {
			return
		}
		a.roster.Picks[bestIdx] = best
	}
}

func highestCostIndex(picks []Candidate) int {
	idx := 0
	for i, pick := range picks {
		if pick.Cost() > picks[idx].Cost() {
			idx = i
		}
	}
	return idx
}
