package roster

import "fmt"

// UniquePlayersCriterion ensures no player appears twice, even across roles
type UniquePlayersCriterion struct{}

func NewUniquePlayersCriterion() *UniquePlayersCriterion {
	return &UniquePlayersCriterion{}
}

func (c *UniquePlayersCriterion) Name() string {
	return "UniquePlayers"
}

func (c *UniquePlayersCriterion) AllowsPick(picks []Candidate, candidate Candidate) bool {
	key := candidate.Player.Key()
	for _, pick := range picks {
		if pick.Player.Key() == key {
			return false
		}
	}
	return true
}

func (c *UniquePlayersCriterion) ValidateRoster(roster *Roster, vctx ValidationContext) []ValidationError {
	var errors []ValidationError

	seen := make(map[string]bool)
	for _, pick := range roster.Picks {
		key := pick.Player.Key()
		if seen[key] {
			errors = append(errors, ValidationError{
				Role:          pick.Role,
				PlayerName:    pick.Player.Name,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("player %s is selected more than once", pick.Player.Name),
			})
		}
		seen[key] = true
	}

	return errors
}
