package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fantaelite/draftmaster/pkg/core/model"
	"github.com/fantaelite/draftmaster/pkg/core/roster"
)

// formatOutcome renders an outcome as a table grouped by role with per-role subtotals
func formatOutcome(outcome *roster.Outcome) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s [%s] %s\n", outcome.Strategy, outcome.Status, outcome.ID)
	fmt.Fprintf(&b, "%s\n", outcome.Summary())

	if outcome.Roster != nil {
		nameWidth := 20
		for _, pick := range outcome.Roster.Picks {
			if len(pick.Player.Name) > nameWidth {
				nameWidth = len(pick.Player.Name)
			}
		}

		costs := outcome.Roster.CostByRole()
		var current model.Role
		for _, pick := range outcome.Roster.Sorted() {
			if pick.Role != current {
				current = pick.Role
				fmt.Fprintf(&b, "\n%s (%.2f)\n", current, costs[current])
			}
			fmt.Fprintf(&b, "  %-*s %-12s %7.2f  fm %.2f  pv %d\n",
				nameWidth, pick.Player.Name, pick.Player.Club, pick.Cost(), pick.Player.FantasyAverage, pick.Player.Appearances)
		}
		fmt.Fprintf(&b, "\n%-*s %7.2f\n", nameWidth+15, "Total", outcome.TotalCost)
	}

	if len(outcome.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range outcome.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	if len(outcome.ValidationErrors) > 0 {
		b.WriteString("\nValidation:\n")
		for _, verr := range outcome.ValidationErrors {
			kind := "error"
			if verr.Advisory {
				kind = "advisory"
			}
			fmt.Fprintf(&b, "  - [%s] %s: %s\n", kind, verr.CriterionName, verr.Description)
		}
	}

	return b.String()
}

// formatStrategy renders a strategy's weights and, if set, its role shares
func formatStrategy(s *roster.Strategy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", s.Name)
	if s.Description != "" {
		fmt.Fprintf(&b, " - %s", s.Description)
	}
	fmt.Fprintf(&b, "\n  weights: cost %.2f, appearances %.2f, fantasy average %.2f, rating %.2f\n",
		s.Weights.Cost, s.Weights.Appearances, s.Weights.FantasyAverage, s.Weights.Rating)
	fmt.Fprintf(&b, "  top-k multiple %d, rookie multiplier %.2f, jitter %.2f\n", s.TopKMultiple, s.RookieMultiplier, s.Jitter)

	if s.HasShares() {
		roles := make([]model.Role, 0, len(s.Shares))
		for role := range s.Shares {
			roles = append(roles, role)
		}
		sort.Slice(roles, func(i, j int) bool { return roleOrder(roles[i]) < roleOrder(roles[j]) })

		parts := make([]string, len(roles))
		for i, role := range roles {
			parts[i] = fmt.Sprintf("%s %.0f-%.0f%%", role.Short(), s.Shares[role].Min, s.Shares[role].Max)
		}
		fmt.Fprintf(&b, "  shares: %s\n", strings.Join(parts, ", "))
	}
	return b.String()
}

func roleOrder(role model.Role) int {
	for i, r := range model.AllRoles {
		if r == role {
			return i
		}
	}
	return len(model.AllRoles)
}
