package roster

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

const defaultSampleRetries = 20

var unreachableCost = math.Inf(1)

// SelectOptions configures how a single role is filled
type SelectOptions struct {
	Role model.Role
	Need int

	// Ceiling is the most the role's picks may cost together
	Ceiling float64

	TopKMultiple  int
	SampleRetries int
	Rng           *rand.Rand

	// Picks holds the players already selected in this build attempt
	Picks []Candidate

	// Taken marks player keys that may not be selected again
	Taken map[string]bool

	Criteria []Criterion
}

// SelectRole chooses opts.Need candidates from a ranked pool without exceeding the ceiling.
//
// Selection runs in two phases:
//   - random samples of Need players are drawn from the top-K affordable candidates,
//     and the first sample that fits under the ceiling is accepted
//   - if no sample fits, players are picked one at a time from the top-K candidates
//     that still leave room for the cheapest completion of the role
//
// Returns an InsufficientCandidatesError if the role cannot be filled.
func SelectRole(ranked []Candidate, opts SelectOptions) ([]Candidate, error) {
	if opts.Need <= 0 {
		return nil, nil
	}

	affordable := make([]Candidate, 0, len(ranked))
	for _, c := range ranked {
		if opts.Taken[c.Player.Key()] || c.Cost() > opts.Ceiling+costEpsilon {
			continue
		}
		if !allowsPick(opts.Criteria, opts.Picks, c) {
			continue
		}
		affordable = append(affordable, c)
	}

	shortfall := &InsufficientCandidatesError{
		Role:      opts.Role,
		Need:      opts.Need,
		Available: len(affordable),
		Ceiling:   opts.Ceiling,
	}
	if len(affordable) < opts.Need || cheapestSum(affordable, opts.Need, -1, nil) > opts.Ceiling+costEpsilon {
		return nil, shortfall
	}

	window := min(len(affordable), max(opts.TopKMultiple, 1)*opts.Need)

	retries := opts.SampleRetries
	if retries <= 0 {
		retries = defaultSampleRetries
	}
	for range retries {
		indices := opts.Rng.Perm(window)[:opts.Need]
		sort.Ints(indices)

		sample := make([]Candidate, opts.Need)
		for i, idx := range indices {
			sample[i] = affordable[idx]
		}
		if sumCost(sample) <= opts.Ceiling+costEpsilon && sampleAllowed(opts, sample) {
			return sample, nil
		}
	}

	return selectSequential(affordable, opts, shortfall)
}

// selectSequential picks one player at a time, only considering candidates that keep
// the cheapest completion of the remaining slots within the ceiling
func selectSequential(affordable []Candidate, opts SelectOptions, shortfall *InsufficientCandidatesError) ([]Candidate, error) {
	chosen := make(map[int]bool, opts.Need)
	picks := append([]Candidate(nil), opts.Picks...)
	selected := make([]Candidate, 0, opts.Need)
	remaining := opts.Ceiling

	for len(selected) < opts.Need {
		left := opts.Need - len(selected) - 1

		var feasible []int
		for i, c := range affordable {
			if chosen[i] || c.Cost() > remaining+costEpsilon {
				continue
			}
			if !allowsPick(opts.Criteria, picks, c) {
				continue
			}
			if c.Cost()+cheapestSum(affordable, left, i, chosen) > remaining+costEpsilon {
				continue
			}
			feasible = append(feasible, i)
		}
		if len(feasible) == 0 {
			return nil, shortfall
		}

		window := min(len(feasible), max(opts.TopKMultiple, 1)*opts.Need)
		idx := feasible[opts.Rng.IntN(window)]

		chosen[idx] = true
		selected = append(selected, affordable[idx])
		picks = append(picks, affordable[idx])
		remaining -= affordable[idx].Cost()
	}

	return selected, nil
}

// sampleAllowed replays a sample through the criteria as if picked in order
func sampleAllowed(opts SelectOptions, sample []Candidate) bool {
	if len(opts.Criteria) == 0 {
		return true
	}
	picks := append([]Candidate(nil), opts.Picks...)
	for _, c := range sample {
		if !allowsPick(opts.Criteria, picks, c) {
			return false
		}
		picks = append(picks, c)
	}
	return true
}

// cheapestSum returns the cost of the n cheapest candidates, skipping index exclude
// and any index already chosen. Returns +Inf when fewer than n remain.
func cheapestSum(candidates []Candidate, n int, exclude int, chosen map[int]bool) float64 {
	if n <= 0 {
		return 0
	}

	costs := make([]float64, 0, len(candidates))
	for i, c := range candidates {
		if i == exclude || chosen[i] {
			continue
		}
		costs = append(costs, c.Cost())
	}
	if len(costs) < n {
		return unreachableCost
	}

	sort.Float64s(costs)
	total := 0.0
	for _, cost := range costs[:n] {
		total += cost
	}
	return total
}

func sumCost(candidates []Candidate) float64 {
	total := 0.0
	for _, c := range candidates {
		total += c.Cost()
	}
	return total
}
