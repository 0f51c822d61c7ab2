package roster

import (
	"math/rand/v2"
	"sort"

	"github.com/fantaelite/draftmaster/pkg/core/model"
)

// MultiRoleMode decides which pools a multi-role player enters
type MultiRoleMode string

const (
	// MultiRoleFirstMatch places a player only in the pool of their first listed role
	MultiRoleFirstMatch MultiRoleMode = "first"

	// MultiRoleAny places a player in every listed role's pool; they still fill one slot
	MultiRoleAny MultiRoleMode = "any"
)

// EligibleForRole returns true if the player may fill the role under the given mode
func EligibleForRole(p model.Player, role model.Role, mode MultiRoleMode) bool {
	if p.Cost <= 0 {
		return false
	}
	if mode == MultiRoleAny {
		return p.HasRole(role)
	}
	return p.PrimaryRole() == role
}

// RolePool returns the players eligible for a role, preserving input order
func RolePool(players []model.Player, role model.Role, mode MultiRoleMode) []model.Player {
	var pool []model.Player
	for _, p := range players {
		if EligibleForRole(p, role, mode) {
			pool = append(pool, p)
		}
	}
	return pool
}

// signalMaxima holds the per-pool maximum of every signal
type signalMaxima struct {
	cost        float64
	appearances float64
	fantasy     float64
	rating      float64
}

func poolMaxima(pool []model.Player) signalMaxima {
	var m signalMaxima
	for _, p := range pool {
		m.cost = max(m.cost, p.Cost)
		m.appearances = max(m.appearances, float64(p.Appearances))
		m.fantasy = max(m.fantasy, p.FantasyAverage)
		m.rating = max(m.rating, p.SeasonAverageRating)
	}
	return m
}

// ratio returns value / maximum, or 0 when the maximum is not positive
func ratio(value, maximum float64) float64 {
	if maximum <= 0 {
		return 0
	}
	return value / maximum
}

// RankCandidates scores a role pool under a strategy and sorts it best first.
//
// Every signal is divided by its maximum within the pool, so scores are comparable
// whatever the budget scale. Ties are broken by a key drawn from rng for each call:
// the same seed gives the same order, while successive calls vary it.
func RankCandidates(pool []model.Player, role model.Role, strategy *Strategy, rng *rand.Rand) []Candidate {
	maxima := poolMaxima(pool)

	candidates := make([]Candidate, len(pool))
	for i, p := range pool {
		score := scoreCandidate(p, strategy, maxima)
		if strategy.Jitter > 0 {
			score += strategy.Jitter * rng.Float64()
		}
		candidates[i] = Candidate{
			Player:   p,
			Role:     role,
			Score:    score,
			tiebreak: rng.Float64(),
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].tiebreak < candidates[j].tiebreak
	})

	return candidates
}

// scoreCandidate computes the weighted score of a player.
// Rookies have no meaningful history, so their price is the only signal used and it is
// inflated to keep promising newcomers in contention.
func scoreCandidate(p model.Player, strategy *Strategy, maxima signalMaxima) float64 {
	w := strategy.Weights
	costShare := ratio(p.Cost, maxima.cost)

	if p.IsRookie() {
		return costShare * strategy.RookieMultiplier * w.Sum()
	}

	return w.Cost*costShare +
		w.Appearances*ratio(float64(p.Appearances), maxima.appearances) +
		w.FantasyAverage*ratio(p.FantasyAverage, maxima.fantasy) +
		w.Rating*ratio(p.SeasonAverageRating, maxima.rating)
}
