package db

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fantaelite/draftmaster/pkg/core/model"
	"github.com/fantaelite/draftmaster/pkg/core/roster"
)

// playerNamespace derives stable IDs for catalog rows that carry none
var playerNamespace = uuid.MustParse("6f1f6c1e-4a55-4b8f-9a0e-5d0c3a2b7e11")

// PlayerID returns the stored identity of p: its own ID, or a name-based UUID of name and club
func PlayerID(p model.Player) string {
	if p.ID != "" {
		return p.ID
	}
	return uuid.NewSHA1(playerNamespace, []byte(p.Name+"|"+p.Club)).String()
}

// ToPlayerRecords converts catalog players into records stamped with importedAt
func ToPlayerRecords(players []model.Player, importedAt time.Time) []PlayerRecord {
	records := make([]PlayerRecord, 0, len(players))
	for _, p := range players {
		labels := make([]string, len(p.Roles))
		for i, role := range p.Roles {
			labels[i] = role.Short()
		}
		records = append(records, PlayerRecord{
			ID:                  PlayerID(p),
			Name:                p.Name,
			Club:                p.Club,
			Roles:               strings.Join(labels, ";"),
			SeasonAverageRating: p.SeasonAverageRating,
			FantasyAverage:      p.FantasyAverage,
			Appearances:         p.Appearances,
			Cost:                p.Cost,
			ImportedAt:          importedAt,
		})
	}
	return records
}

// ToPlayer converts a stored record back into a catalog player.
// A record whose roles no longer resolve yields a player with no roles.
func (r PlayerRecord) ToPlayer() model.Player {
	return model.Player{
		ID:                  r.ID,
		Name:                r.Name,
		Club:                r.Club,
		Roles:               model.ParseRoles(r.Roles),
		SeasonAverageRating: r.SeasonAverageRating,
		FantasyAverage:      r.FantasyAverage,
		Appearances:         r.Appearances,
		Cost:                r.Cost,
	}
}

// ToGenerationRecords converts an outcome into a generation record and its picks
func ToGenerationRecords(outcome *roster.Outcome, createdAt time.Time) (GenerationRecord, []RosterPickRecord) {
	generation := GenerationRecord{
		ID:        outcome.ID,
		Strategy:  outcome.Strategy,
		Status:    string(outcome.Status),
		Budget:    outcome.Budget,
		TotalCost: outcome.TotalCost,
		MinPct:    outcome.Band.MinPct,
		MaxPct:    outcome.Band.MaxPct,
		Attempts:  outcome.Attempts,
		CreatedAt: createdAt,
	}
	if outcome.Reason != nil {
		generation.Reason = outcome.Reason.Error()
	}

	if outcome.Roster == nil {
		return generation, nil
	}

	picks := make([]RosterPickRecord, 0, outcome.Roster.Size())
	for _, pick := range outcome.Roster.Picks {
		picks = append(picks, RosterPickRecord{
			GenerationID: outcome.ID,
			PlayerID:     PlayerID(pick.Player),
			PlayerName:   pick.Player.Name,
			Club:         pick.Player.Club,
			Role:         pick.Role.Short(),
			Cost:         pick.Cost(),
			Score:        pick.Score,
		})
	}
	return generation, picks
}
