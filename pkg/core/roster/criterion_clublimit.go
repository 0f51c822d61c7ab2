package roster

import "fmt"

// ClubLimitCriterion caps how many players may come from the same club.
// A limit of 0 disables the criterion.
type ClubLimitCriterion struct {
	maxPerClub int
}

func NewClubLimitCriterion(maxPerClub int) *ClubLimitCriterion {
	return &ClubLimitCriterion{maxPerClub: maxPerClub}
}

func (c *ClubLimitCriterion) Name() string {
	return "ClubLimit"
}

func (c *ClubLimitCriterion) AllowsPick(picks []Candidate, candidate Candidate) bool {
	if c.maxPerClub <= 0 || candidate.Player.Club == "" {
		return true
	}

	count := 0
	for _, pick := range picks {
		if pick.Player.Club == candidate.Player.Club {
			count++
		}
	}
	return count < c.maxPerClub
}

func (c *ClubLimitCriterion) ValidateRoster(roster *Roster, vctx ValidationContext) []ValidationError {
	if c.maxPerClub <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var clubs []string
	for _, pick := range roster.Picks {
		club := pick.Player.Club
		if club == "" {
			continue
		}
		if counts[club] == 0 {
			clubs = append(clubs, club)
		}
		counts[club]++
	}

	var errors []ValidationError
	for _, club := range clubs {
		if counts[club] > c.maxPerClub {
			errors = append(errors, ValidationError{
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("club %s has %d players, limit is %d", club, counts[club], c.maxPerClub),
			})
		}
	}
	return errors
}
